// Copyright 2025 the densiq authors
// This file is part of densiq, a quantile-based density approximation toolkit
//
// densiq is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// densiq is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with densiq. If not, see <http://www.gnu.org/licenses/>.

package visualizer

import (
	"fmt"
	"sync"

	"github.com/densiq/densiq/density"
)

var (
	currentMu    sync.RWMutex
	currentState *viewState
)

// setViewState derives the view model from the density facade and installs
// it for the render handlers.
func setViewState(p *density.PDF) error {
	if p == nil {
		return fmt.Errorf("visualizer: no density facade")
	}
	derived, err := buildViewState(p)
	if err != nil {
		return err
	}
	currentMu.Lock()
	currentState = derived
	currentMu.Unlock()
	return nil
}

// currentView returns the installed view model.
func currentView() (*viewState, error) {
	currentMu.RLock()
	defer currentMu.RUnlock()
	if currentState == nil {
		return nil, fmt.Errorf("visualizer: view state not initialised")
	}
	return currentState, nil
}
