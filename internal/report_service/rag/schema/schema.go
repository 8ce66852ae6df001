package schema

// Document is a raw source document fetched from the student's bucket.
// It is ephemeral: produced by a loader, consumed by the splitter, never
// persisted.
type Document struct {
	// FileName is the object name, unique within the student's namespace.
	FileName string

	// Text is the decoded content of the document.
	Text string
}

// Chunk is a bounded-length segment of a document paired with its embedding
// vector. Chunks are the unit of persistence and retrieval.
type Chunk struct {
	// Name identifies the chunk within a student's collection,
	// formatted as "{filename}_{index}".
	Name string

	// FileName is the source document this chunk was cut from.
	FileName string

	// Text is the chunk content, at most the configured chunk size in
	// characters unless a single word exceeds it.
	Text string

	// Embedding is the vector representation of Text, with dimensionality
	// fixed by the embedding model.
	Embedding []float32
}
