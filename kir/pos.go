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

import (
    `fmt`
    `math`
)

const (
    _P_term = math.MaxUint32
)

// Pos is an insertion point: instruction slot I of block B.
type Pos struct {
    B *BasicBlock
    I int
}

func (self Pos) String() string {
    if self.I == _P_term {
        return fmt.Sprintf("bb_%d.term", self.B.Id)
    } else {
        return fmt.Sprintf("bb_%d.ins[%d]", self.B.Id, self.I)
    }
}

// AtEntry is the first instruction slot of bb. Phi nodes live in their own
// per-block list, so slot 0 is always past every phi.
func AtEntry(bb *BasicBlock) Pos {
    return Pos { bb, 0 }
}

// AtTerminator is the slot immediately before the terminator of bb.
func AtTerminator(bb *BasicBlock) Pos {
    return Pos { bb, _P_term }
}
