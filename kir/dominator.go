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

/** This is an implementation of the iterative dominance algorithm described
 *  in "A Simple, Fast Dominance Algorithm" by Cooper, Harvey and Kennedy.
 */

package kir

import (
    `github.com/oleiade/lane`
)

type _DomBuilder struct {
    rpo  []*BasicBlock
    num  map[int]int
    idom []int
    seen map[int]bool
}

func newDomBuilder() *_DomBuilder {
    return &_DomBuilder {
        num  : make(map[int]int),
        seen : make(map[int]bool),
    }
}

func (self *_DomBuilder) postorder(bb *BasicBlock, out *[]*BasicBlock) {
    self.seen[bb.Id] = true

    /* traverse the successors */
    for it := bb.Term.Successors(); it.Next(); {
        if p := it.Block(); !self.seen[p.Id] {
            self.postorder(p, out)
        }
    }

    /* the node itself comes last */
    *out = append(*out, bb)
}

func (self *_DomBuilder) number(root *BasicBlock) {
    var buf []*BasicBlock
    self.postorder(root, &buf)

    /* reverse into RPO order */
    nb := len(buf)
    self.rpo = make([]*BasicBlock, nb)
    for i, bb := range buf {
        self.rpo[nb - i - 1] = bb
        self.num[bb.Id] = nb - i - 1
    }
}

func (self *_DomBuilder) intersect(a int, b int) int {
    for a != b {
        for a > b { a = self.idom[a] }
        for b > a { b = self.idom[b] }
    }
    return a
}

func (self *_DomBuilder) solve() {
    more := true
    self.idom = make([]int, len(self.rpo))

    /* the entry dominates itself, everything else starts unknown */
    for i := range self.idom { self.idom[i] = -1 }
    self.idom[0] = 0

    /* iterate to a fixed point, in reverse postorder */
    for more {
        more = false
        for i := 1; i < len(self.rpo); i++ {
            dom := -1
            for _, p := range self.rpo[i].Pred {
                if pi := self.num[p.Id]; self.idom[pi] != -1 {
                    if dom == -1 {
                        dom = pi
                    } else {
                        dom = self.intersect(dom, pi)
                    }
                }
            }
            if dom != -1 && dom != self.idom[i] {
                self.idom[i] = dom
                more = true
            }
        }
    }
}

func buildDominatorTree(cfg *CFG) {
    dt := newDomBuilder()
    dt.number(cfg.Root)
    dt.solve()

    /* clear the stale facts */
    for id := range cfg.Depth       { delete(cfg.Depth, id) }
    for id := range cfg.DominatedBy { delete(cfg.DominatedBy, id) }
    for id := range cfg.DominatorOf { delete(cfg.DominatorOf, id) }

    /* map the dominator relations, the entry has no dominator */
    for i := 1; i < len(dt.rpo); i++ {
        bb := dt.rpo[i]
        up := dt.rpo[dt.idom[i]]
        cfg.DominatedBy[bb.Id] = up
        cfg.DominatorOf[up.Id] = append(cfg.DominatorOf[up.Id], bb)
    }

    /* assign tree depths level by level */
    q := lane.NewQueue()
    for q.Enqueue(cfg.Root); !q.Empty(); {
        p := q.Dequeue().(*BasicBlock)
        for _, bb := range cfg.DominatorOf[p.Id] {
            cfg.Depth[bb.Id] = cfg.Depth[p.Id] + 1
            q.Enqueue(bb)
        }
    }
}
