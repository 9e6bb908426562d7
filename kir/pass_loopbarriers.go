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
    `go.uber.org/zap`
)

// LoopBarriers adds implicit work-group barriers to innermost kernel loops,
// so that the downstream region formation treats every iteration of the
// loop body as one barrier region and can schedule work-items across it,
// the same way it would across a user-written barrier.
//
// Work-group barrier semantics require all or none of the work-items to
// reach a barrier on every iteration. Pretending a loop body is a barrier
// region is therefore only legal when
//
//   a) the loop is entered by all work-items or by none of them, and
//   b) the exit condition does not depend on the work-item, so every
//      work-item runs the same number of iterations.
//
// Both facts are taken from the uniformity analysis. Every other case is a
// silent "not applicable": the loop is left byte-for-byte unchanged and the
// rest of the compiler simply does not parallelize across it.
type LoopBarriers struct {
    Log     *zap.Logger
    Kernels KernelClassifier
    Uniform UniformityInfo
}

func (self *LoopBarriers) logger() *zap.Logger {
    if self.Log != nil {
        return self.Log
    } else {
        return zap.NewNop()
    }
}

func (self *LoopBarriers) Apply(fn *Func, lo *Loop) bool {
    if !self.Kernels.IsKernel(fn) {
        return false
    }
    return self.processLoop(fn, lo)
}

func (self *LoopBarriers) processLoop(fn *Func, lo *Loop) bool {
    /* a loop that already synchronizes is already split into barrier
     * regions, instrumenting it again would create new regions and change
     * the synchronization pattern the kernel asked for; every member block
     * must be scanned in full, a marker missed anywhere makes the second
     * insertion unsound */
    for _, bb := range lo.Blocks {
        for _, ins := range bb.Ins {
            if _, ok := ins.(*IrBarrier); ok {
                return false
            }
        }
    }

    /* weed out loops that are not even candidates */
    if !self.candidateShape(lo) {
        return false
    }
    return self.addInnerLoopBarrier(fn, lo)
}

/* candidateShape accepts innermost loops with a known header and exactly
 * one exiting block, nothing else can be proven legal below */
func (self *LoopBarriers) candidateShape(lo *Loop) bool {
    return lo.Innermost() && lo.Header != nil && lo.ExitingBlock() != nil
}

func (self *LoopBarriers) addInnerLoopBarrier(fn *Func, lo *Loop) bool {
    log := self.logger()

    /* the legality argument below is per-iteration of a single loop, it
     * does not compose across nesting levels */
    if !lo.Innermost() {
        return false
    }

    /* multiple exit points, cannot prove all-or-none execution */
    brexit := lo.ExitingBlock()
    if brexit == nil {
        log.Debug("implicit barriers: loop does not have a unique exiting block",
            zap.String("func", fn.Name))
        return false
    }

    /* multiple entry blocks */
    entry := lo.Header
    if entry == nil {
        return false
    }

    /* the whole loop construct must be executed by all work-items or by
     * none of them, otherwise some work-items would skip the synthetic
     * barrier while others reach it */
    if !self.Uniform.UniformBlock(fn, entry) {
        log.Debug("implicit barriers: loop entry is not uniform",
            zap.String("func", fn.Name),
            zap.Int("entry", entry.Id))
        return false
    }

    /* the exit must be a conditional branch on a uniform condition: then
     * the loop runs the same number of iterations for every work-item,
     * and together with the entry check every iteration's barrier region
     * is executed by all work-items or by none */
    br, ok := brexit.Term.(*IrBranch)
    if !ok {
        log.Debug("implicit barriers: loop exit is not a conditional branch",
            zap.String("func", fn.Name),
            zap.Int("exiting", brexit.Id))
        return false
    }
    if !self.Uniform.UniformValue(fn, br.V) {
        log.Debug("implicit barriers: loop exit condition is not uniform",
            zap.String("func", fn.Name),
            zap.Stringer("cond", br.V))
        return false
    }

    /* add a barrier to the very end of the body and to the beginning of
     * the entry to isolate the parallel region */
    CreateBarrier(AtTerminator(brexit))
    CreateBarrier(AtEntry(entry))

    log.Debug("implicit barriers: inner-loop barrier added",
        zap.String("func", fn.Name),
        zap.Int("entry", entry.Id),
        zap.Int("exiting", brexit.Id))
    return true
}
