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
    `testing`

    `github.com/stretchr/testify/require`
)

func TestIr_Strings(t *testing.T) {
    b1 := &BasicBlock { Id: 1 }
    b2 := &BasicBlock { Id: 2 }
    r1 := Rv(1)
    r2 := Rv(2)
    phi := &IrPhi { R: Rv(3), V: map[*BasicBlock]*Reg { b2: &r2, b1: &r1 } }
    require.Equal(t, "%r3 = φ(bb_1: %r1, bb_2: %r2)", phi.String())
    require.Equal(t, "$0", Rz.String())
    require.Equal(t, "barrier.local|global", (&IrBarrier { Fence: FenceAll }).String())
    require.Equal(t, "barrier.local", (&IrBarrier { Fence: FenceLocal }).String())
    require.Equal(t, "%r1 = %r1 + %r2", (&IrBinaryExpr { R: r1, X: r1, Y: r2, Op: IrOpAdd }).String())
    require.Equal(t, "%r1 = local_id.0", (&IrLocalId { R: r1 }).String())
    require.Equal(t, "if %r1 goto bb_2 else bb_1", (&IrBranch { V: r1, To: b2, Ln: b1 }).String())
    require.Equal(t, "goto bb_1", (&IrJump { Ln: b1 }).String())
    require.Equal(t, "ret {%r1}", (&IrReturn { V: []Reg { r1 } }).String())
}

func TestIr_Successors(t *testing.T) {
    b1 := &BasicBlock { Id: 1 }
    b2 := &BasicBlock { Id: 2 }

    /* conditional branch: the taken edge carries value 1 */
    it := (&IrBranch { V: Rv(7), To: b1, Ln: b2 }).Successors()
    require.True(t, it.Next())
    require.Equal(t, b1, it.Block())
    v, ok := it.Value()
    require.True(t, ok)
    require.Equal(t, int64(1), v)
    require.True(t, it.Next())
    require.Equal(t, b2, it.Block())
    _, ok = it.Value()
    require.False(t, ok)
    require.False(t, it.Next())

    /* unconditional jump: a single successor */
    it = (&IrJump { Ln: b1 }).Successors()
    require.True(t, it.Next())
    require.Equal(t, b1, it.Block())
    require.False(t, it.Next())

    /* return: no successors at all */
    it = (&IrReturn {}).Successors()
    require.False(t, it.Next())
    require.Nil(t, it.Block())
}

func TestIr_UsagesAndDefinitions(t *testing.T) {
    p := &IrBinaryExpr { R: Rv(3), X: Rv(1), Y: Rv(2), Op: IrOpCmpLt }
    require.Equal(t, []*Reg { &p.X, &p.Y }, p.Usages())
    require.Equal(t, []*Reg { &p.R }, p.Definitions())

    /* stores define nothing, intrinsics use nothing */
    var node IrNode = &IrStore { R: Rv(1), Mem: Rv(2), Size: 4 }
    _, ok := node.(IrDefinitions)
    require.False(t, ok)
    node = &IrLocalId { R: Rv(4), Dim: 1 }
    _, ok = node.(IrUsages)
    require.False(t, ok)
}

func TestIr_CreateBarrier(t *testing.T) {
    bb := &BasicBlock { Id: 1 }
    bb.addInstr(&IrConstInt { R: Rv(1), V: 42 })
    bb.termReturn()

    /* one marker at the entry, one before the terminator */
    CreateBarrier(AtTerminator(bb))
    CreateBarrier(AtEntry(bb))
    require.Len(t, bb.Ins, 3)
    require.IsType(t, &IrBarrier{}, bb.Ins[0])
    require.IsType(t, &IrConstInt{}, bb.Ins[1])
    require.IsType(t, &IrBarrier{}, bb.Ins[2])
    require.Equal(t, "bb_1.term", AtTerminator(bb).String())
    require.Equal(t, "bb_1.ins[0]", AtEntry(bb).String())
}
