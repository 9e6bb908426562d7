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

package parcl_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/parcl/parcl"
	"github.com/parcl/parcl/kir"
)

// buildKernel returns a kernel with one innermost loop: the header bb_1
// jumps into the latch bb_2, which tests a counter against a bound and
// either loops back or falls through to the return block.
func buildKernel(name string) (*kir.Func, *kir.BasicBlock, *kir.BasicBlock, kir.Reg) {
	b0 := &kir.BasicBlock{Id: 0}
	b1 := &kir.BasicBlock{Id: 1}
	b2 := &kir.BasicBlock{Id: 2}
	b3 := &kir.BasicBlock{Id: 3}
	cond := kir.Rv(9)
	b0.Ins = []kir.IrNode{&kir.IrConstInt{R: kir.Rv(1), V: 16}}
	b0.Term = &kir.IrJump{Ln: b1}
	b1.Ins = []kir.IrNode{&kir.IrBinaryExpr{R: kir.Rv(3), X: kir.Rv(2), Y: kir.Rv(1), Op: kir.IrOpAdd}}
	b1.Term = &kir.IrJump{Ln: b2}
	b2.Ins = []kir.IrNode{&kir.IrBinaryExpr{R: cond, X: kir.Rv(3), Y: kir.Rv(1), Op: kir.IrOpCmpLt}}
	b2.Term = &kir.IrBranch{V: cond, To: b1, Ln: b3}
	b3.Term = &kir.IrReturn{}
	fn := &kir.Func{Name: name, Attr: kir.AttrKernel, Body: kir.BuildCFG(b0)}
	return fn, b1, b2, cond
}

func barriers(bbs ...*kir.BasicBlock) (n int) {
	for _, bb := range bbs {
		for _, ins := range bb.Ins {
			if _, ok := ins.(*kir.IrBarrier); ok {
				n++
			}
		}
	}
	return
}

func TestAddImplicitBarriers_UniformKernelLoop(t *testing.T) {
	fn, header, latch, cond := buildKernel("saxpy")
	facts := kir.NewUniformityFacts()
	facts.SetBlock(fn, header, true)
	facts.SetValue(fn, cond, true)

	ok := parcl.AddImplicitBarriers(fn,
		parcl.WithUniformity(facts),
		parcl.WithLogger(zaptest.NewLogger(t)))
	require.True(t, ok)
	require.Equal(t, 2, barriers(header, latch))
	require.IsType(t, &kir.IrBarrier{}, header.Ins[0])
	require.IsType(t, &kir.IrBarrier{}, latch.Ins[len(latch.Ins)-1])

	// a second invocation detects the markers and changes nothing
	require.False(t, parcl.AddImplicitBarriers(fn, parcl.WithUniformity(facts)))
	require.Equal(t, 2, barriers(header, latch))
}

func TestAddImplicitBarriers_NonUniformCondition(t *testing.T) {
	fn, header, latch, _ := buildKernel("scan")
	facts := kir.NewUniformityFacts()
	facts.SetBlock(fn, header, true)

	require.False(t, parcl.AddImplicitBarriers(fn, parcl.WithUniformity(facts)))
	require.Zero(t, barriers(header, latch))
}

func TestAddImplicitBarriers_DefaultsTransformNothing(t *testing.T) {
	fn, header, latch, _ := buildKernel("reduce")
	require.False(t, parcl.AddImplicitBarriers(fn))
	require.Zero(t, barriers(header, latch))
}

type noKernels struct{}

func (noKernels) IsKernel(*kir.Func) bool { return false }

func TestAddImplicitBarriers_ClassifierGatesEverything(t *testing.T) {
	fn, header, latch, cond := buildKernel("saxpy")
	facts := kir.NewUniformityFacts()
	facts.SetBlock(fn, header, true)
	facts.SetValue(fn, cond, true)

	ok := parcl.AddImplicitBarriers(fn,
		parcl.WithUniformity(facts),
		parcl.WithKernelClassifier(noKernels{}))
	require.False(t, ok)
	require.Zero(t, barriers(header, latch))
}
