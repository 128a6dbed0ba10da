package mapi

const (
	// PropContactIDs holds references to member contacts.
	PropContactIDs = "[MSWABMAPI]PropTag0x66001102"
	// PropOneOffs holds inline name/email members.
	PropOneOffs = "[MSWABMAPI]PropTag0x80091102"
)

const (
	contactIDPrefix = "CID_V1:"
	oneOffHeaderLen = 24
	terminatorLen   = 2
	oneOffFields    = 3
)

// OneOff is a group member stored inline rather than as a contact reference.
type OneOff struct {
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
}
