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

func TestDominator_Diamond(t *testing.T) {
    b0 := &BasicBlock { Id: 0 }
    b1 := &BasicBlock { Id: 1 }
    b2 := &BasicBlock { Id: 2 }
    b3 := &BasicBlock { Id: 3 }
    b0.termBranch(Rv(1), b1, b2)
    b1.termJump(b3)
    b2.termJump(b3)
    b3.termReturn()
    cfg := BuildCFG(b0)

    /* every block hangs off the entry, the join is not dominated by
     * either side of the diamond */
    require.Nil(t, cfg.DominatedBy[b0.Id])
    require.Equal(t, b0, cfg.DominatedBy[b1.Id])
    require.Equal(t, b0, cfg.DominatedBy[b2.Id])
    require.Equal(t, b0, cfg.DominatedBy[b3.Id])
    require.True(t, cfg.Dominates(b0, b3))
    require.False(t, cfg.Dominates(b1, b3))
    require.Equal(t, 0, cfg.Depth[b0.Id])
    require.Equal(t, 1, cfg.Depth[b3.Id])
}

func TestDominator_LoopBackEdge(t *testing.T) {
    b0 := &BasicBlock { Id: 0 }
    b1 := &BasicBlock { Id: 1 }
    b2 := &BasicBlock { Id: 2 }
    b3 := &BasicBlock { Id: 3 }
    b0.termJump(b1)
    b1.termJump(b2)
    b2.termBranch(Rv(1), b1, b3)
    b3.termReturn()
    cfg := BuildCFG(b0)

    /* the back edge must not disturb the chain */
    require.Equal(t, b0, cfg.DominatedBy[b1.Id])
    require.Equal(t, b1, cfg.DominatedBy[b2.Id])
    require.Equal(t, b2, cfg.DominatedBy[b3.Id])
    require.True(t, cfg.Dominates(b1, b3))
    require.Equal(t, 3, cfg.Depth[b3.Id])

    /* the header picked up both predecessors */
    require.Len(t, b1.Pred, 2)
    require.Contains(t, b1.Pred, b0)
    require.Contains(t, b1.Pred, b2)
}

func TestDominator_RebuildIsStable(t *testing.T) {
    b0 := &BasicBlock { Id: 0 }
    b1 := &BasicBlock { Id: 1 }
    b0.termJump(b1)
    b1.termBranch(Rv(1), b1, b0)
    cfg := BuildCFG(b0)
    cfg.Rebuild()
    cfg.Rebuild()

    /* no duplicated predecessor links */
    require.Len(t, b1.Pred, 2)
    require.Len(t, b0.Pred, 1)
    require.Equal(t, b0, cfg.DominatedBy[b1.Id])
}

func TestDominator_PostOrder(t *testing.T) {
    b0 := &BasicBlock { Id: 0 }
    b1 := &BasicBlock { Id: 1 }
    b2 := &BasicBlock { Id: 2 }
    b0.termBranch(Rv(1), b1, b2)
    b1.termJump(b2)
    b2.termReturn()
    cfg := BuildCFG(b0)

    /* children of the dominator tree come before their parents */
    var ids []int
    cfg.PostOrder().ForEach(func(bb *BasicBlock) {
        ids = append(ids, bb.Id)
    })
    require.Len(t, ids, 3)
    require.Equal(t, 0, ids[len(ids) - 1])
}
