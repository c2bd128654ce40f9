package domain

// Upload is a user-supplied file. It lives only for the request that carries it.
type Upload struct {
	Name string
	Data []byte
}

type Stats struct {
	WordCount int
	CharCount int
	Language  string
}

type Analysis struct {
	// Excerpt is the truncated text that was sent for analysis and counted.
	Excerpt string
	Result  string
	Stats   Stats
}
