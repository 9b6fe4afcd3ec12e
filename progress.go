// Copyright 2022 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// 	https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package caserun

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// reportProgress logs the value of computed every progress interval until the
// returned func is called. The returned func waits for the reporter to exit.
func (r *run) reportProgress(computed *atomic.Int64) (stop func()) {
	if r.opts.progress <= 0 {
		return func() {}
	}
	t := r.opts.clock.NewTicker(r.opts.progress)
	quit := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer t.Stop()
		for {
			select {
			case <-t.Chan():
				r.log.Info("progress",
					zap.Int64("computed", computed.Load()),
					zap.Int("cases", r.count))
			case <-quit:
				return
			}
		}
	}()
	return func() {
		close(quit)
		<-done
	}
}
