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

package parcl

import (
	"go.uber.org/zap"

	"github.com/parcl/parcl/internal/opts"
	"github.com/parcl/parcl/kir"
)

// Option is the property setter function for opts.Options.
type Option func(*opts.Options)

// WithLogger routes the per-loop decision trace of every pass to log.
// The default is a nop logger.
func WithLogger(log *zap.Logger) Option {
	if log == nil {
		panic("parcl: nil logger")
	}
	return func(o *opts.Options) { o.Logger = log }
}

// WithKernelClassifier overrides how functions are recognized as parallel
// kernels. The default classifies by the kir.AttrKernel attribute.
func WithKernelClassifier(kc kir.KernelClassifier) Option {
	if kc == nil {
		panic("parcl: nil kernel classifier")
	}
	return func(o *opts.Options) { o.Kernels = kc }
}

// WithUniformity supplies the work-item uniformity facts the passes
// consume. The default is an empty fact store, which conservatively
// reports everything as non-uniform and therefore transforms nothing.
func WithUniformity(ui kir.UniformityInfo) Option {
	if ui == nil {
		panic("parcl: nil uniformity info")
	}
	return func(o *opts.Options) { o.Uniform = ui }
}
