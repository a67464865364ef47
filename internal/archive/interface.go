package archive

// BlobStore defines the contract for durable report storage.
type BlobStore interface {
	Store(filename string, data []byte) error
	Retrieve(filename string) ([]byte, error)
	List(prefix string) ([]string, error)
	Delete(filename string) error
}
