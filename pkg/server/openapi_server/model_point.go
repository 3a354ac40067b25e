// SPDX-License-Identifier: MIT

package openapi_server

// Point is a grid cell
type Point struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
}

// AssertPointRequired checks if the required fields are not zero-ed
func AssertPointRequired(obj Point) error {
	return nil
}
