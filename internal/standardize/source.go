package standardize

// SourceKind distinguishes in-memory uploads from remote references.
type SourceKind int

const (
	// SourceFile is an in-memory byte buffer with a name and MIME hint.
	SourceFile SourceKind = iota
	// SourceURL is a remote HTTP(S) resource or a data URL.
	SourceURL
)

// Source is a single upload handed to the pipeline. It is owned by the
// caller; the pipeline never retains a reference after Standardize
// returns.
type Source struct {
	Kind     SourceKind
	Name     string
	MIMEHint string
	Data     []byte
	URL      string
}

// FileSource wraps in-memory upload bytes.
func FileSource(name, mimeHint string, data []byte) Source {
	return Source{Kind: SourceFile, Name: name, MIMEHint: mimeHint, Data: data}
}

// URLSource wraps a remote or data URL.
func URLSource(url string) Source {
	return Source{Kind: SourceURL, URL: url}
}
