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
    `sort`
    `strings`
)

type Reg uint64

const (
    _R_zero = 1 << 63
)

const (
    Rz Reg = _R_zero
)

func Rv(i int) Reg {
    return Reg(i)
}

func (self Reg) Zero() bool {
    return self & _R_zero != 0
}

func (self Reg) String() string {
    if self.Zero() {
        return "$0"
    } else {
        return fmt.Sprintf("%%r%d", uint64(self))
    }
}

type (
    IrFence    uint8
    IrBinaryOp uint8
)

const (
    FenceLocal IrFence = 1 << iota
    FenceGlobal
)

const (
    FenceAll = FenceLocal | FenceGlobal
)

func (self IrFence) String() string {
    switch self {
        case FenceLocal  : return "local"
        case FenceGlobal : return "global"
        case FenceAll    : return "local|global"
        default          : return "none"
    }
}

const (
    IrOpAdd IrBinaryOp = iota
    IrOpSub
    IrOpMul
    IrOpAnd
    IrOpOr
    IrOpXor
    IrOpCmpEq
    IrOpCmpNe
    IrOpCmpLt
    IrOpCmpGe
)

func (self IrBinaryOp) String() string {
    switch self {
        case IrOpAdd   : return "+"
        case IrOpSub   : return "-"
        case IrOpMul   : return "*"
        case IrOpAnd   : return "&"
        case IrOpOr    : return "|"
        case IrOpXor   : return "^"
        case IrOpCmpEq : return "=="
        case IrOpCmpNe : return "!="
        case IrOpCmpLt : return "<"
        case IrOpCmpGe : return ">="
        default        : panic("unreachable")
    }
}

type IrNode interface {
    fmt.Stringer
    irnode()
}

func (*IrPhi)        irnode() {}
func (*IrJump)       irnode() {}
func (*IrBranch)     irnode() {}
func (*IrReturn)     irnode() {}
func (*IrLoad)       irnode() {}
func (*IrStore)      irnode() {}
func (*IrConstInt)   irnode() {}
func (*IrBinaryExpr) irnode() {}
func (*IrLocalId)    irnode() {}
func (*IrGroupId)    irnode() {}
func (*IrBarrier)    irnode() {}

type IrUsages interface {
    IrNode
    Usages() []*Reg
}

type IrDefinitions interface {
    IrNode
    Definitions() []*Reg
}

type IrPhi struct {
    R Reg
    V map[*BasicBlock]*Reg
}

func (self *IrPhi) String() string {
    nb := len(self.V)
    ret := make([]string, 0, nb)
    phi := make([]struct{b int; r Reg}, 0, nb)

    /* add each path */
    for bb, reg := range self.V {
        phi = append(phi, struct{b int; r Reg}{b: bb.Id, r: *reg})
    }

    /* sort by basic block ID */
    sort.Slice(phi, func(i int, j int) bool {
        return phi[i].b < phi[j].b
    })

    /* dump as string */
    for _, p := range phi {
        ret = append(ret, fmt.Sprintf("bb_%d: %s", p.b, p.r))
    }

    /* join them together */
    return fmt.Sprintf(
        "%s = φ(%s)",
        self.R,
        strings.Join(ret, ", "),
    )
}

func (self *IrPhi) Usages() (r []*Reg) {
    r = make([]*Reg, 0, len(self.V))
    for _, v := range self.V { r = append(r, v) }
    return
}

func (self *IrPhi) Definitions() []*Reg {
    return []*Reg { &self.R }
}

type IrSuccessors interface {
    Next() bool
    Block() *BasicBlock
    Value() (int64, bool)
}

type IrTerminator interface {
    IrNode
    Successors() IrSuccessors
    irterminator()
}

func (*IrJump)   irterminator() {}
func (*IrBranch) irterminator() {}
func (*IrReturn) irterminator() {}

type _EmptySuccessors struct{}

func (_EmptySuccessors) Next() bool            { return false }
func (_EmptySuccessors) Block() *BasicBlock    { return nil }
func (_EmptySuccessors) Value() (int64, bool)  { return 0, false }

type _JumpSuccessors struct {
    b *BasicBlock
}

func (self *_JumpSuccessors) Next() bool {
    return self.b != nil
}

func (self *_JumpSuccessors) Block() (bb *BasicBlock) {
    bb, self.b = self.b, nil
    return
}

func (self *_JumpSuccessors) Value() (int64, bool) {
    return 0, false
}

type _BranchSuccessors struct {
    i  int
    to *BasicBlock
    ln *BasicBlock
}

func (self *_BranchSuccessors) Next() bool {
    self.i++
    return self.i <= 2
}

func (self *_BranchSuccessors) Block() *BasicBlock {
    switch self.i {
        case 1  : return self.to
        case 2  : return self.ln
        default : return nil
    }
}

func (self *_BranchSuccessors) Value() (int64, bool) {
    if self.i == 1 {
        return 1, true
    } else {
        return 0, false
    }
}

// IrJump is an unconditional transfer to Ln.
type IrJump struct {
    Ln *BasicBlock
}

func (self *IrJump) String() string {
    return fmt.Sprintf("goto bb_%d", self.Ln.Id)
}

func (self *IrJump) Successors() IrSuccessors {
    return &_JumpSuccessors { b: self.Ln }
}

// IrBranch transfers to To when V is non-zero, to Ln otherwise.
type IrBranch struct {
    V  Reg
    To *BasicBlock
    Ln *BasicBlock
}

func (self *IrBranch) String() string {
    return fmt.Sprintf("if %s goto bb_%d else bb_%d", self.V, self.To.Id, self.Ln.Id)
}

func (self *IrBranch) Usages() []*Reg {
    return []*Reg { &self.V }
}

func (self *IrBranch) Successors() IrSuccessors {
    return &_BranchSuccessors { to: self.To, ln: self.Ln }
}

type IrReturn struct {
    V []Reg
}

func (self *IrReturn) String() string {
    nb := len(self.V)
    ret := make([]string, 0, nb)

    /* dump registers */
    for _, r := range self.V {
        ret = append(ret, r.String())
    }

    /* join them together */
    return fmt.Sprintf(
        "ret {%s}",
        strings.Join(ret, ", "),
    )
}

func (self *IrReturn) Usages() (r []*Reg) {
    r = make([]*Reg, 0, len(self.V))
    for i := range self.V { r = append(r, &self.V[i]) }
    return
}

func (self *IrReturn) Successors() IrSuccessors {
    return _EmptySuccessors{}
}

type IrLoad struct {
    R    Reg
    Mem  Reg
    Size uint8
}

func (self *IrLoad) String() string {
    return fmt.Sprintf("%s = load.u%d %s", self.R, self.Size * 8, self.Mem)
}

func (self *IrLoad) Usages() []*Reg {
    return []*Reg { &self.Mem }
}

func (self *IrLoad) Definitions() []*Reg {
    return []*Reg { &self.R }
}

type IrStore struct {
    R    Reg
    Mem  Reg
    Size uint8
}

func (self *IrStore) String() string {
    return fmt.Sprintf("store.u%d %s -> %s", self.Size * 8, self.R, self.Mem)
}

func (self *IrStore) Usages() []*Reg {
    return []*Reg { &self.R, &self.Mem }
}

type IrConstInt struct {
    R Reg
    V int64
}

func (self *IrConstInt) String() string {
    return fmt.Sprintf("%s = $%d", self.R, self.V)
}

func (self *IrConstInt) Definitions() []*Reg {
    return []*Reg { &self.R }
}

type IrBinaryExpr struct {
    R  Reg
    X  Reg
    Y  Reg
    Op IrBinaryOp
}

func (self *IrBinaryExpr) String() string {
    return fmt.Sprintf("%s = %s %s %s", self.R, self.X, self.Op, self.Y)
}

func (self *IrBinaryExpr) Usages() []*Reg {
    return []*Reg { &self.X, &self.Y }
}

func (self *IrBinaryExpr) Definitions() []*Reg {
    return []*Reg { &self.R }
}

// IrLocalId yields the calling work-item's index within the work-group
// along dimension Dim. The result differs across work-items.
type IrLocalId struct {
    R   Reg
    Dim uint8
}

func (self *IrLocalId) String() string {
    return fmt.Sprintf("%s = local_id.%d", self.R, self.Dim)
}

func (self *IrLocalId) Definitions() []*Reg {
    return []*Reg { &self.R }
}

// IrGroupId yields the work-group's index along dimension Dim. The result
// is the same for every work-item in the group.
type IrGroupId struct {
    R   Reg
    Dim uint8
}

func (self *IrGroupId) String() string {
    return fmt.Sprintf("%s = group_id.%d", self.R, self.Dim)
}

func (self *IrGroupId) Definitions() []*Reg {
    return []*Reg { &self.R }
}

// IrBarrier is a work-group synchronization marker. Downstream region
// formation keys on its presence only; Fence is carried through for the
// memory ordering the final barrier call must provide.
type IrBarrier struct {
    Fence IrFence
}

func (self *IrBarrier) String() string {
    return fmt.Sprintf("barrier.%s", self.Fence)
}
