// SPDX-License-Identifier: MIT

package openapi_server

type Path struct {
	// number of moves
	Length int32 `json:"length"`
	// sum of the move costs
	Cost      float64 `json:"cost"`
	Waypoints []Point `json:"waypoints"`
}

// AssertPathRequired checks if the required fields are not zero-ed
func AssertPathRequired(obj Path) error {
	elements := map[string]interface{}{
		"waypoints": obj.Waypoints,
	}
	for name, el := range elements {
		if isZero := IsZeroValue(el); isZero {
			return &RequiredError{Field: name}
		}
	}

	for _, el := range obj.Waypoints {
		if err := AssertPointRequired(el); err != nil {
			return err
		}
	}
	return nil
}
