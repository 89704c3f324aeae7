package inspect

import (
	"fmt"
	"io"
	"strings"
)

var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

// WriteDot outputs rows in Graphviz DOT format, with name as the label of
// the root node. Rows with a secondary key are grouped below a node for
// their partition.
func WriteDot(w io.Writer, name string, rows []Row) error {
	var b strings.Builder
	b.WriteString("strict digraph {\n")
	b.WriteString("\tnode [fontname=Arial,fontsize=12];\n")
	b.WriteString(fmt.Sprintf("\t\"0\" [label=\"%s\",shape=plaintext];\n", dotEscaper.Replace(name)))
	nodelist, edgelist := "", ""
	id := 1
	for _, g := range groups(rows) {
		parent := 0
		if rows[g[0]].Partitioned {
			parent = id
			id++
			label := fmt.Sprintf("%s\\n(%d)", dotEscaper.Replace(rows[g[0]].Primary), g[1]-g[0])
			nodelist += fmt.Sprintf("\t\"%d\" [label=\"%s\" %s];\n", parent, label, dotStyles(false))
			edgelist += fmt.Sprintf("\t\"0\" -> \"%d\";\n", parent)
		}
		for _, row := range rows[g[0]:g[1]] {
			key := row.Primary
			if row.Partitioned {
				key = row.Secondary
			}
			label := fmt.Sprintf("%s\\n%s", dotEscaper.Replace(key), dotEscaper.Replace(row.Value))
			nodelist += fmt.Sprintf("\t\"%d\" [label=\"%s\" %s];\n", id, label, dotStyles(true))
			edgelist += fmt.Sprintf("\t\"%d\" -> \"%d\";\n", parent, id)
			id++
		}
	}
	b.WriteString(nodelist)
	b.WriteString(edgelist)
	b.WriteString("}\n")
	if _, err := io.WriteString(w, b.String()); err != nil {
		tracer().Errorf("inspect DOT: %s", err.Error())
		return err
	}
	return nil
}

func dotStyles(isrow bool) string {
	s := ",style=filled"
	if isrow {
		s += ",shape=box"
	} else {
		s += ",color=black,fillcolor=\"#a3d7e4\""
		s += ",shape=ellipse"
	}
	return s
}
