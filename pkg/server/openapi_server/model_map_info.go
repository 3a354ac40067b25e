// SPDX-License-Identifier: MIT

package openapi_server

type MapInfo struct {
	Width         int32  `json:"width"`
	Height        int32  `json:"height"`
	Distance      string `json:"distance"`
	Store         string `json:"store"`
	WalkableCells int32  `json:"walkableCells"`
}
