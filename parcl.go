/*
 * Copyright 2026 Parcl Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package parcl is the work-group parallelization middle-end of a kernel
// compiler. It composes loop transformations over the kernel IR; the entry
// points here wire up the default pipeline explicitly, so embedders that
// need a different composition can build their own kir.LoopPipeline
// instead.
package parcl

import (
	"github.com/parcl/parcl/internal/opts"
	"github.com/parcl/parcl/kir"
)

// AddImplicitBarriers treats eligible innermost loops of fn as if they
// contained a work-group barrier, by inserting synthetic barrier markers
// around every iteration of the loop body. It reports whether any loop was
// transformed; functions that are not kernels, loops that already contain
// barriers, and loops whose legality cannot be proven from the uniformity
// facts are all left untouched.
func AddImplicitBarriers(fn *kir.Func, options ...Option) bool {
	cfg := opts.GetDefaultOptions()
	for _, opt := range options {
		opt(&cfg)
	}

	pipe := kir.NewLoopPipeline(cfg.Logger, kir.LoopPassDescriptor{
		Name: "Implicit Loop Barriers",
		Pass: &kir.LoopBarriers{
			Log:     cfg.Logger,
			Kernels: cfg.Kernels,
			Uniform: cfg.Uniform,
		},
		Needs:     kir.AnalysisDominators | kir.AnalysisUniformity,
		Preserves: kir.AnalysisDominators | kir.AnalysisUniformity,
	})
	return pipe.Run(fn)
}
