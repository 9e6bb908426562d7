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

// UniformityInfo answers whether an entity behaves identically for every
// work-item of the group: a uniform value holds the same content in all
// work-items, a uniform block is reached by either all of them or none of
// them. The facts are produced by a separate analysis before the kernel
// passes run; passes here only consume them, and additive instruction
// insertion keeps them valid.
type UniformityInfo interface {
    UniformValue(fn *Func, r Reg) bool
    UniformBlock(fn *Func, bb *BasicBlock) bool
}

// UniformityFacts is a per-function fact store populated by an external
// uniformity analysis. Entities without a recorded fact are reported as
// non-uniform, the conservative answer.
type UniformityFacts struct {
    vals map[*Func]map[Reg]bool
    blks map[*Func]map[int]bool
}

func NewUniformityFacts() *UniformityFacts {
    return &UniformityFacts {
        vals: make(map[*Func]map[Reg]bool),
        blks: make(map[*Func]map[int]bool),
    }
}

func (self *UniformityFacts) SetValue(fn *Func, r Reg, uniform bool) {
    if _, ok := self.vals[fn]; !ok {
        self.vals[fn] = make(map[Reg]bool)
    }
    self.vals[fn][r] = uniform
}

func (self *UniformityFacts) SetBlock(fn *Func, bb *BasicBlock, uniform bool) {
    if _, ok := self.blks[fn]; !ok {
        self.blks[fn] = make(map[int]bool)
    }
    self.blks[fn][bb.Id] = uniform
}

func (self *UniformityFacts) UniformValue(fn *Func, r Reg) bool {
    return r.Zero() || self.vals[fn][r]
}

func (self *UniformityFacts) UniformBlock(fn *Func, bb *BasicBlock) bool {
    return bb == fn.Body.Root || self.blks[fn][bb.Id]
}
