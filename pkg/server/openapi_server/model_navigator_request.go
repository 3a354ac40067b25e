// SPDX-License-Identifier: MIT

package openapi_server

type NavigatorRequest struct {
	// node store: dense, coord-hash or index-hash
	Navigator string `json:"navigator"`
}

// NavigatorResult reports the active node store
type NavigatorResult struct {
	Navigator string `json:"navigator"`
}

func AssertNavigatorRequestRequired(obj NavigatorRequest) error {
	elements := map[string]interface{}{
		"navigator": obj.Navigator,
	}
	for name, el := range elements {
		if isZero := IsZeroValue(el); isZero {
			return &RequiredError{Field: name}
		}
	}
	return nil
}
