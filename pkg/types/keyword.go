package types

// Keyword is a keyword string together with the reverse index of asset UUIDs
// carrying it. Titles are Unicode-normalized (NFC) at load time.
type Keyword struct {
	Title      string
	AssetUUIDs []string
}
