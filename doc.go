// Package contacts implements the identifier formats a contact facade shares
// with its backing property store: runtime id strings built from quoted
// `/GUID:` and `/PATH:` tokens, the token grammar behind them, and array node
// paths that address elements of repeated properties.
//
// Legacy address-book group membership lives in pkg/mapi (binary decoding)
// and pkg/group (store-backed reads, filtering, logging and activity).
package contacts
