// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package types

import "fmt"

// View is a monotonically increasing consensus round number.
type View uint64

// GenesisView is the view number of the genesis leaf.
const GenesisView View = 0

func (v View) String() string {
	return fmt.Sprintf("view(%d)", uint64(v))
}

// Next returns the successor view.
func (v View) Next() View {
	return v + 1
}
