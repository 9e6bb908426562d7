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
    `sort`

    `github.com/oleiade/lane`
)

// Loop is a natural loop: the header plus every block that can reach a
// back edge to it without leaving the loop. Only back edges whose target
// dominates their source are considered, irreducible regions simply do not
// produce loops.
type Loop struct {
    Header   *BasicBlock
    Parent   *Loop
    Children []*Loop
    Blocks   []*BasicBlock
    member   map[int]bool
}

// Innermost reports whether the loop contains no nested sub-loops.
func (self *Loop) Innermost() bool {
    return len(self.Children) == 0
}

// Contains reports whether bb is a member block of the loop.
func (self *Loop) Contains(bb *BasicBlock) bool {
    return bb != nil && self.member[bb.Id]
}

// ExitingBlock finds the unique member block with a successor outside the
// loop. It returns nil when there is no exit at all or when several member
// blocks leave the loop.
func (self *Loop) ExitingBlock() (ret *BasicBlock) {
    for _, bb := range self.Blocks {
        for it := bb.Term.Successors(); it.Next(); {
            if !self.member[it.Block().Id] {
                if ret != nil && ret != bb {
                    return nil
                }
                ret = bb
            }
        }
    }
    return
}

type LoopNest struct {
    cfg   *CFG
    Loops []*Loop
}

// FindLoops discovers every natural loop of cfg and links the nesting
// relations between them. Predecessor links and dominator facts must be
// up to date, run Rebuild first if edges were changed.
func FindLoops(cfg *CFG) *LoopNest {
    latches := make(map[*BasicBlock][]*BasicBlock)
    headers := make([]*BasicBlock, 0, 4)

    /* find all the back edges, grouped by loop header */
    cfg.PostOrder().ForEach(func(bb *BasicBlock) {
        for it := bb.Term.Successors(); it.Next(); {
            if hdr := it.Block(); cfg.Dominates(hdr, bb) {
                if _, ok := latches[hdr]; !ok {
                    headers = append(headers, hdr)
                }
                latches[hdr] = append(latches[hdr], bb)
            }
        }
    })

    /* headers in a stable order */
    sort.Slice(headers, func(i int, j int) bool {
        return headers[i].Id < headers[j].Id
    })

    /* collect the natural loop of every header */
    nest := &LoopNest { cfg: cfg }
    for _, hdr := range headers {
        nest.Loops = append(nest.Loops, collectLoop(hdr, latches[hdr]))
    }

    /* link the nesting relations */
    nest.nestLoops()
    return nest
}

// InnermostFirst returns the loops ordered inner before outer: deeper
// headers in the dominator tree come first.
func (self *LoopNest) InnermostFirst() []*Loop {
    ret := make([]*Loop, len(self.Loops))
    copy(ret, self.Loops)
    sort.SliceStable(ret, func(i int, j int) bool {
        return self.cfg.Depth[ret[i].Header.Id] > self.cfg.Depth[ret[j].Header.Id]
    })
    return ret
}

func collectLoop(hdr *BasicBlock, latches []*BasicBlock) *Loop {
    s := lane.NewStack()
    lo := &Loop {
        Header : hdr,
        member : map[int]bool { hdr.Id: true },
    }

    /* walk backwards from every latch up to the header */
    for _, bb := range latches {
        if !lo.member[bb.Id] {
            lo.member[bb.Id] = true
            s.Push(bb)
        }
    }
    for !s.Empty() {
        p := s.Pop().(*BasicBlock)
        lo.Blocks = append(lo.Blocks, p)

        /* every predecessor of a member is a member, up to the header */
        for _, bb := range p.Pred {
            if !lo.member[bb.Id] {
                lo.member[bb.Id] = true
                s.Push(bb)
            }
        }
    }

    /* keep the member blocks in a stable order */
    lo.Blocks = append(lo.Blocks, hdr)
    sort.Slice(lo.Blocks, func(i int, j int) bool {
        return lo.Blocks[i].Id < lo.Blocks[j].Id
    })
    return lo
}

func (self *LoopNest) nestLoops() {
    for _, lo := range self.Loops {
        for _, up := range self.Loops {
            if up == lo || !up.member[lo.Header.Id] {
                continue
            }

            /* choose the smallest enclosing loop as the parent */
            if lo.Parent == nil || len(up.Blocks) < len(lo.Parent.Blocks) {
                lo.Parent = up
            }
        }
    }
    for _, lo := range self.Loops {
        if lo.Parent != nil {
            lo.Parent.Children = append(lo.Parent.Children, lo)
        }
    }
}
