// SPDX-License-Identifier: MIT

package openapi_server

type RouteResult struct {
	Origin      Point `json:"origin"`
	Destination Point `json:"destination"`
	Reachable   bool  `json:"reachable"`
	Path        *Path `json:"path,omitempty"`
}
