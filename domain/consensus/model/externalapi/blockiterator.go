package externalapi

// BlockIterator is an iterator over blocks according to some order.
type BlockIterator interface {
	First() bool
	Next() bool
	Get() (*DomainHash, error)
	Close() error
}
