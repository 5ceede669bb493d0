package model

// MediaBlob is an uploaded clip handed to the retention pipeline. The digest
// is the hex SHA-256 of the content and doubles as the storage key, so
// byte-identical uploads land on the same file.
type MediaBlob struct {
	Digest    string
	SessionID string
	Data      []byte
}
