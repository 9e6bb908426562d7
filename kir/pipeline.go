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
    `strings`

    `go.uber.org/zap`
)

type Analysis uint8

const (
    AnalysisDominators Analysis = 1 << iota
    AnalysisUniformity
)

func (self Analysis) String() string {
    var ret []string
    if self & AnalysisDominators != 0 { ret = append(ret, "dominators") }
    if self & AnalysisUniformity != 0 { ret = append(ret, "uniformity") }
    if len(ret) == 0 {
        return "none"
    }
    return strings.Join(ret, "|")
}

// LoopPass transforms a single loop of fn in place. It reports whether
// anything was changed; a false return means the loop was left untouched.
type LoopPass interface {
    Apply(fn *Func, lo *Loop) bool
}

// LoopPassDescriptor names a loop pass and declares which analyses it
// consumes and which ones its mutations keep valid. A pass that does not
// preserve dominator facts forces a CFG rebuild after every change.
type LoopPassDescriptor struct {
    Pass      LoopPass
    Name      string
    Needs     Analysis
    Preserves Analysis
}

// LoopPipeline runs a sequence of loop passes over every natural loop of a
// function, inner loops before the loops enclosing them. Pipelines are
// composed explicitly by the caller, there is no global pass registry.
type LoopPipeline struct {
    log    *zap.Logger
    passes []LoopPassDescriptor
}

func NewLoopPipeline(log *zap.Logger, passes ...LoopPassDescriptor) *LoopPipeline {
    if log == nil {
        log = zap.NewNop()
    }
    for _, p := range passes {
        log.Debug("loop pass registered",
            zap.String("pass", p.Name),
            zap.Stringer("needs", p.Needs),
            zap.Stringer("preserves", p.Preserves))
    }
    return &LoopPipeline {
        log    : log,
        passes : passes,
    }
}

// Run applies every pass to every loop of fn, and reports whether any pass
// changed anything at all.
func (self *LoopPipeline) Run(fn *Func) bool {
    ret := false
    for _, p := range self.passes {
        ret = self.runPass(fn, p) || ret
    }
    return ret
}

func (self *LoopPipeline) runPass(fn *Func, p LoopPassDescriptor) bool {
    ret := false
    more := true
    done := make(map[int]bool)

    /* rediscover the loop nest whenever the pass invalidates it */
    for more {
        more = false
        nest := FindLoops(fn.Body)

        /* visit every unprocessed loop, innermost first */
        for _, lo := range nest.InnermostFirst() {
            if done[lo.Header.Id] {
                continue
            } else {
                done[lo.Header.Id] = true
            }

            /* apply the pass to this loop */
            if !p.Pass.Apply(fn, lo) {
                continue
            }

            /* record the change */
            ret = true
            self.log.Debug("loop transformed",
                zap.String("pass", p.Name),
                zap.String("func", fn.Name),
                zap.Int("header", lo.Header.Id))

            /* additive passes keep the dominator facts and the loop
             * structure valid, everything else starts over */
            if p.Preserves & AnalysisDominators == 0 {
                fn.Body.Rebuild()
                more = true
                break
            }
        }
    }
    return ret
}
