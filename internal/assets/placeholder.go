package assets

// PlaceholderRef is the fixed reference returned for every upload when no
// real binary storage is configured.
const PlaceholderRef = "https://placehold.co/600x400"

// PlaceholderStore performs no storage at all. Every Save returns the same
// constant reference regardless of input.
type PlaceholderStore struct{}

func NewPlaceholderStore() *PlaceholderStore {
	return &PlaceholderStore{}
}

func (s *PlaceholderStore) Save(filename, contentType string, data []byte) (string, error) {
	return PlaceholderRef, nil
}

func (s *PlaceholderStore) Release(ref string) error {
	return nil
}
