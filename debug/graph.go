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

// Package debug renders kernel IR as Graphviz dot text, for eyeballing the
// CFG, the loop nest and the barrier placement of a function under
// transformation.
package debug

import (
	"fmt"
	"html"
	"os"
	"strings"

	"github.com/oleiade/lane"

	"github.com/parcl/parcl/kir"
)

func dumpbb(bb *kir.BasicBlock, cfg *kir.CFG, nest *kir.LoopNest) string {
	var rows []string

	/* dominator and loop metadata */
	idom := "∅"
	if d := cfg.DominatedBy[bb.Id]; d != nil {
		idom = fmt.Sprintf("bb_%d", d.Id)
	}
	var loops []string
	if nest != nil {
		for _, lo := range nest.Loops {
			if lo.Contains(bb) {
				loops = append(loops, fmt.Sprintf("bb_%d", lo.Header.Id))
			}
		}
	}
	rows = append(rows,
		row(fmt.Sprintf("# idom = %s", idom)),
		row(fmt.Sprintf("# loops = {%s}", strings.Join(loops, ", "))),
		"<hr/>\n",
	)

	/* phi nodes and instructions, barriers stand out */
	for _, v := range bb.Phi {
		rows = append(rows, row(v.String()))
	}
	for _, v := range bb.Ins {
		if _, ok := v.(*kir.IrBarrier); ok {
			rows = append(rows, fmt.Sprintf("<tr><td align=\"left\" bgcolor=\"orange\">%s</td></tr>\n", esc(v.String())))
		} else {
			rows = append(rows, row(v.String()))
		}
	}
	rows = append(rows, "<hr/>\n", row(bb.Term.String()))

	return strings.Join(append([]string{
		"<table border=\"1\" cellborder=\"0\" cellspacing=\"0\">\n",
		fmt.Sprintf("<tr><td>bb_%d</td></tr>\n", bb.Id),
		"<hr/>\n",
	}, append(rows, "</table>")...), "")
}

func esc(s string) string {
	return strings.ReplaceAll(html.EscapeString(s), " ", "&nbsp;")
}

func row(s string) string {
	return fmt.Sprintf("<tr><td align=\"left\">%s</td></tr>\n", esc(s))
}

// CFGDot renders the body of fn as a Graphviz digraph.
func CFGDot(fn *kir.Func) string {
	q := lane.NewQueue()
	n := make(map[int]bool)
	e := make(map[struct{ A, B int }]bool)
	nest := kir.FindLoops(fn.Body)
	buf := []string{
		"digraph CFG {",
		`    graph [ fontname = "Fira Code" ]`,
		`    node [ fontname = "Fira Code" fontsize="16" shape = "plaintext" ]`,
		`    edge [ fontname = "Fira Code" ]`,
		fmt.Sprintf(`    START [ shape = "circle" label = "%s" ]`, fn.Name),
		fmt.Sprintf(`    START -> bb_%d`, fn.Body.Root.Id),
	}
	n[fn.Body.Root.Id] = true
	for q.Enqueue(fn.Body.Root); !q.Empty(); {
		p := q.Dequeue().(*kir.BasicBlock)
		buf = append(buf, fmt.Sprintf(`    bb_%d [ label = < %s > ]`, p.Id, dumpbb(p, fn.Body, nest)))
		for it := p.Term.Successors(); it.Next(); {
			ln := it.Block()
			if !n[ln.Id] {
				n[ln.Id] = true
				q.Enqueue(ln)
			}
			edge := struct{ A, B int }{p.Id, ln.Id}
			if !e[edge] {
				e[edge] = true
				if v, ok := it.Value(); ok {
					buf = append(buf, fmt.Sprintf(`    bb_%d -> bb_%d [ label = "%d" ]`, p.Id, ln.Id, v))
				} else {
					buf = append(buf, fmt.Sprintf(`    bb_%d -> bb_%d`, p.Id, ln.Id))
				}
			}
		}
	}
	buf = append(buf, "}")
	return strings.Join(buf, "\n")
}

// WriteCFG writes the dot rendering of fn into path.
func WriteCFG(fn *kir.Func, path string) error {
	return os.WriteFile(path, []byte(CFGDot(fn)), 0644)
}
