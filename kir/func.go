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

package kir

type Attr uint8

const (
    // AttrKernel marks a function as a work-group kernel entry point.
    AttrKernel Attr = 1 << iota

    // AttrNoInline excludes a function from cross-function specialization.
    AttrNoInline
)

type Func struct {
    Name string
    Attr Attr
    Body *CFG
}

func (self *Func) IsKernel() bool {
    return self.Attr & AttrKernel != 0
}

// KernelClassifier decides whether a function is a parallel kernel in scope
// for work-group transformations. Functions it rejects pass through every
// kernel pass untouched.
type KernelClassifier interface {
    IsKernel(fn *Func) bool
}

// AttrClassifier classifies by the AttrKernel function attribute, which the
// front-end sets from the kernel qualifier of the source program.
type AttrClassifier struct{}

func (AttrClassifier) IsKernel(fn *Func) bool {
    return fn.IsKernel()
}
