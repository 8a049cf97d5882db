// Package source provides the DocumentSource implementations: local files,
// HTTP resources, a router choosing between them by location, a policy guard
// and a logging decorator.
package source

import (
	"github.com/gcbaptista/inverted-index/internal/errors"
	"github.com/gcbaptista/inverted-index/model"
)

// parse decodes payload into a collection, reporting any failure as an InvalidJSONError.
func parse(location string, payload []byte) (model.Collection, error) {
	docs, err := model.ParseCollection(payload)
	if err != nil {
		return nil, errors.NewInvalidJSONError(location, err.Error(), err)
	}
	return docs, nil
}
