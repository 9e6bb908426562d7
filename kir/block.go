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

type BasicBlock struct {
    Id   int
    Phi  []*IrPhi
    Ins  []IrNode
    Pred []*BasicBlock
    Term IrTerminator
}

func (self *BasicBlock) addInstr(p ...IrNode) {
    self.Ins = append(self.Ins, p...)
}

func (self *BasicBlock) termJump(to *BasicBlock) {
    self.Term = &IrJump { Ln: to }
}

func (self *BasicBlock) termReturn(rv ...Reg) {
    self.Term = &IrReturn { V: rv }
}

func (self *BasicBlock) termBranch(v Reg, t *BasicBlock, f *BasicBlock) {
    self.Term = &IrBranch { V: v, To: t, Ln: f }
}

/* insertAt splices p into the instruction stream at index i, leaving every
 * existing instruction and the terminator in place. */
func (self *BasicBlock) insertAt(i int, p IrNode) {
    if i < 0 || i > len(self.Ins) {
        panic("kir: instruction index out of range")
    }
    ins := make([]IrNode, 0, len(self.Ins) + 1)
    ins = append(ins, self.Ins[:i]...)
    ins = append(ins, p)
    ins = append(ins, self.Ins[i:]...)
    self.Ins = ins
}

// CreateBarrier inserts a full-fence synchronization marker at p, and
// returns the newly created marker. The insertion is purely additive, no
// existing instruction, phi node or terminator is moved across a block
// boundary, so dominance and uniformity facts remain valid.
func CreateBarrier(p Pos) *IrBarrier {
    ir := &IrBarrier { Fence: FenceAll }

    /* the terminator slot means "immediately before the terminator" */
    if p.I == _P_term {
        p.B.addInstr(ir)
    } else {
        p.B.insertAt(p.I, ir)
    }
    return ir
}
