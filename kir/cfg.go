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
    `github.com/oleiade/lane`
)

type CFG struct {
    Root        *BasicBlock
    Depth       map[int]int
    DominatedBy map[int]*BasicBlock
    DominatorOf map[int][]*BasicBlock
}

// BuildCFG assembles the graph rooted at root into a CFG with predecessor
// links and dominator facts materialized.
func BuildCFG(root *BasicBlock) *CFG {
    ret := &CFG {
        Root        : root,
        Depth       : make(map[int]int),
        DominatedBy : make(map[int]*BasicBlock),
        DominatorOf : make(map[int][]*BasicBlock),
    }
    ret.Rebuild()
    return ret
}

// PostOrder iterates over every reachable block, children of the dominator
// tree before their parents.
func (self *CFG) PostOrder() *BasicBlockIter {
    return newBasicBlockIter(self)
}

// Dominates reports whether block a dominates block b.
func (self *CFG) Dominates(a *BasicBlock, b *BasicBlock) bool {
    for b != nil {
        if a == b {
            return true
        } else {
            b = self.DominatedBy[b.Id]
        }
    }
    return false
}

// Rebuild recomputes predecessor links and the dominator tree from the
// successor edges. Passes that add or remove edges must call it before any
// dominance query is made again; additive instruction insertion does not
// require a rebuild.
func (self *CFG) Rebuild() {
    q := lane.NewQueue()
    v := make(map[int]bool)

    /* the entry has a stable terminator */
    if self.Root == nil || self.Root.Term == nil {
        panic("kir: malformed CFG: missing root block or terminator")
    }

    /* clear the stale predecessors */
    v[self.Root.Id] = true
    for q.Enqueue(self.Root); !q.Empty(); {
        p := q.Dequeue().(*BasicBlock)
        p.Pred = p.Pred[:0]

        /* add all the successors */
        for it := p.Term.Successors(); it.Next(); {
            if bb := it.Block(); !v[bb.Id] {
                v[bb.Id] = true
                q.Enqueue(bb)
            }
        }
    }

    /* relink every predecessor */
    for id := range v { delete(v, id) }
    v[self.Root.Id] = true
    for q.Enqueue(self.Root); !q.Empty(); {
        p := q.Dequeue().(*BasicBlock)

        /* add self as a predecessor of each successor */
        for it := p.Term.Successors(); it.Next(); {
            bb := it.Block()
            bb.Pred = append(bb.Pred, p)

            /* queue unvisited blocks */
            if !v[bb.Id] {
                v[bb.Id] = true
                q.Enqueue(bb)
            }
        }
    }

    /* rebuild the dominator facts */
    buildDominatorTree(self)
}
