package linode

import "context"

// Iterator walks a Collection in API order, fetching pages on demand.
type Iterator struct {
	ctx        context.Context
	collection *Collection
	index      int
	err        error
}

// HasNext reports whether another element exists. The first call may fetch
// the first page to learn the collection's extent; a fetch failure is
// surfaced by the following Next call.
func (it *Iterator) HasNext() bool {
	if it.err != nil {
		return false
	}

	total, err := it.collection.Len(it.ctx)
	if err != nil {
		it.err = err

		return true
	}

	return it.index < total
}

// Next returns the next element, or ErrNoMoreItems past the end.
func (it *Iterator) Next() (*Entity, error) {
	if it.err != nil {
		err := it.err
		it.err = nil

		return nil, err
	}

	if !it.HasNext() {
		if it.err != nil {
			err := it.err
			it.err = nil

			return nil, err
		}

		return nil, ErrNoMoreItems
	}

	e, err := it.collection.At(it.ctx, it.index)
	if err != nil {
		return nil, err
	}

	it.index++

	return e, nil
}
