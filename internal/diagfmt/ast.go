package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"toyc/internal/ast"
	"toyc/internal/source"
)

// treeNode is a positioned label in an ASCII tree; renderTree lays out an
// entire tree of these into a block of text with connector lines drawn
// between a parent and its children.
type treeNode struct {
	label    string
	children []*treeNode
}

type treeBlock struct {
	lines []string
	width int
	root  int
}

// astDumper walks a CompilationUnit via the same ast.Visitor contract the
// analyzer and code generator use, building a treeNode per node. Each Visit
// method leaves its node in last for its caller to collect — there is no
// return value to double-dispatch through, so state flows through the
// struct instead, exactly like Generator's register-allocating visitor.
type astDumper struct {
	fs   *source.FileSet
	last *treeNode
}

// DumpAST renders a CompilationUnit as an ASCII tree to w. fs may be nil, in
// which case spans are printed as raw byte offsets instead of line:col.
func DumpAST(w io.Writer, unit *ast.CompilationUnit, fs *source.FileSet) error {
	d := &astDumper{fs: fs}
	unit.Accept(d)
	block := renderTree(d.last)
	for _, line := range block.lines {
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}

func (d *astDumper) formatSpan(sp source.Span) string {
	if d.fs == nil {
		return fmt.Sprintf("%d-%d", sp.Start, sp.End)
	}
	start, end := d.fs.Resolve(sp)
	return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
}

func (d *astDumper) leaf(label string) *treeNode { return &treeNode{label: label} }

func (d *astDumper) child(label string, n ast.Expr) *treeNode {
	if n == nil {
		return &treeNode{label: label + ": <none>"}
	}
	n.Accept(d)
	node := d.last
	node.label = label + ": " + node.label
	return node
}

func (d *astDumper) stmtChild(label string, n ast.Stmt) *treeNode {
	if n == nil {
		return &treeNode{label: label + ": <none>"}
	}
	n.Accept(d)
	node := d.last
	node.label = label + ": " + node.label
	return node
}

func (d *astDumper) VisitNumber(n *ast.Number) {
	d.last = d.leaf(fmt.Sprintf("Number(%d) @ %s", n.Value, d.formatSpan(n.Sp)))
}

func (d *astDumper) VisitIdent(n *ast.Ident) {
	d.last = d.leaf(fmt.Sprintf("Ident(%s) @ %s", n.Name, d.formatSpan(n.Sp)))
}

func (d *astDumper) VisitUnary(n *ast.Unary) {
	node := &treeNode{label: fmt.Sprintf("Unary(%s) @ %s", unaryOpName(n.Op), d.formatSpan(n.Sp))}
	node.children = append(node.children, d.child("operand", n.Operand))
	d.last = node
}

func (d *astDumper) VisitBinary(n *ast.Binary) {
	node := &treeNode{label: fmt.Sprintf("Binary(%s) @ %s", binaryOpName(n.Op), d.formatSpan(n.Sp))}
	node.children = append(node.children, d.child("left", n.Left), d.child("right", n.Right))
	d.last = node
}

func (d *astDumper) VisitCall(n *ast.Call) {
	node := &treeNode{label: fmt.Sprintf("Call(%s) -> %s @ %s", n.Name, n.ReturnType, d.formatSpan(n.Sp))}
	for i, arg := range n.Args {
		node.children = append(node.children, d.child(fmt.Sprintf("arg[%d]", i), arg))
	}
	d.last = node
}

func (d *astDumper) VisitVarDecl(n *ast.VarDecl) {
	node := &treeNode{label: fmt.Sprintf("VarDecl(%s) @ %s", n.Name, d.formatSpan(n.Sp))}
	if n.Init != nil {
		node.children = append(node.children, d.child("init", n.Init))
	}
	d.last = node
}

func (d *astDumper) VisitAssign(n *ast.Assign) {
	node := &treeNode{label: fmt.Sprintf("Assign(%s) @ %s", n.Name, d.formatSpan(n.Sp))}
	node.children = append(node.children, d.child("value", n.Value))
	d.last = node
}

func (d *astDumper) VisitBlock(n *ast.Block) {
	node := &treeNode{label: fmt.Sprintf("Block @ %s", d.formatSpan(n.Sp))}
	for i, s := range n.Stmts {
		node.children = append(node.children, d.stmtChild(fmt.Sprintf("stmt[%d]", i), s))
	}
	d.last = node
}

func (d *astDumper) VisitIf(n *ast.If) {
	node := &treeNode{label: fmt.Sprintf("If @ %s", d.formatSpan(n.Sp))}
	node.children = append(node.children, d.child("cond", n.Cond), d.stmtChild("then", n.Then))
	if n.Else != nil {
		node.children = append(node.children, d.stmtChild("else", n.Else))
	}
	d.last = node
}

func (d *astDumper) VisitWhile(n *ast.While) {
	node := &treeNode{label: fmt.Sprintf("While @ %s", d.formatSpan(n.Sp))}
	node.children = append(node.children, d.child("cond", n.Cond), d.stmtChild("body", n.Body))
	d.last = node
}

func (d *astDumper) VisitBreak(n *ast.Break) {
	d.last = d.leaf(fmt.Sprintf("Break @ %s", d.formatSpan(n.Sp)))
}

func (d *astDumper) VisitContinue(n *ast.Continue) {
	d.last = d.leaf(fmt.Sprintf("Continue @ %s", d.formatSpan(n.Sp)))
}

func (d *astDumper) VisitReturn(n *ast.Return) {
	node := &treeNode{label: fmt.Sprintf("Return @ %s", d.formatSpan(n.Sp))}
	if n.Value != nil {
		node.children = append(node.children, d.child("value", n.Value))
	}
	d.last = node
}

func (d *astDumper) VisitExprStmt(n *ast.ExprStmt) {
	node := &treeNode{label: fmt.Sprintf("ExprStmt @ %s", d.formatSpan(n.Sp))}
	node.children = append(node.children, d.child("expr", n.Expr))
	d.last = node
}

func (d *astDumper) VisitFunctionDef(n *ast.FunctionDef) {
	node := &treeNode{label: fmt.Sprintf("FunctionDef(%s) -> %s @ %s", n.Name, n.ReturnType, d.formatSpan(n.Sp))}
	if len(n.Params) > 0 {
		params := &treeNode{label: "Params"}
		for _, p := range n.Params {
			params.children = append(params.children, d.leaf(fmt.Sprintf("%s: %s", p.Name, p.Type)))
		}
		node.children = append(node.children, params)
	}
	node.children = append(node.children, d.stmtChild("body", n.Body))
	d.last = node
}

func (d *astDumper) VisitCompilationUnit(n *ast.CompilationUnit) {
	node := &treeNode{label: fmt.Sprintf("CompilationUnit (%d functions)", len(n.Functions))}
	for _, fn := range n.Functions {
		fn.Accept(d)
		node.children = append(node.children, d.last)
	}
	d.last = node
}

func unaryOpName(op ast.UnaryOp) string {
	switch op {
	case ast.Plus:
		return "+"
	case ast.Neg:
		return "-"
	case ast.Not:
		return "!"
	default:
		return "?"
	}
}

func binaryOpName(op ast.BinaryOp) string {
	switch op {
	case ast.Add:
		return "+"
	case ast.Sub:
		return "-"
	case ast.Mul:
		return "*"
	case ast.Div:
		return "/"
	case ast.Mod:
		return "%"
	case ast.Lt:
		return "<"
	case ast.Le:
		return "<="
	case ast.Gt:
		return ">"
	case ast.Ge:
		return ">="
	case ast.Eq:
		return "=="
	case ast.Ne:
		return "!="
	case ast.And:
		return "&&"
	case ast.Or:
		return "||"
	default:
		return "?"
	}
}

// renderTree lays out node and its children into a block of centered ASCII
// art, connecting a parent to its children with '/','|','\' on the line
// beneath it. Purely a function of label text and tree shape.
func renderTree(node *treeNode) treeBlock {
	label := node.label
	labelWidth := len(label)

	if len(node.children) == 0 {
		return treeBlock{lines: []string{label}, width: labelWidth, root: labelWidth / 2}
	}

	childBlocks := make([]treeBlock, len(node.children))
	maxChildHeight := 0
	for i, child := range node.children {
		childBlocks[i] = renderTree(child)
		if len(childBlocks[i].lines) > maxChildHeight {
			maxChildHeight = len(childBlocks[i].lines)
		}
	}

	const spacing = 3

	positions := make([]int, len(childBlocks))
	totalWidth := 0
	for i, block := range childBlocks {
		positions[i] = totalWidth + block.root
		totalWidth += block.width
		if i != len(childBlocks)-1 {
			totalWidth += spacing
		}
	}

	childrenCenter := (positions[0] + positions[len(positions)-1]) / 2
	rootPos := labelWidth / 2
	shift := childrenCenter - rootPos

	childPrefix := 0
	if shift < 0 {
		childPrefix = -shift
		for i := range positions {
			positions[i] += childPrefix
		}
		totalWidth += childPrefix
		shift = 0
		rootPos = labelWidth / 2
	} else {
		rootPos += shift
	}

	width := totalWidth
	rootLine := label
	if shift > 0 {
		rootLine = strings.Repeat(" ", shift) + label
	}
	if len(rootLine) < width {
		rootLine += strings.Repeat(" ", width-len(rootLine))
	} else if len(rootLine) > width {
		width = len(rootLine)
		for i := range positions {
			if positions[i] >= width {
				width = positions[i] + 1
			}
		}
		if len(rootLine) < width {
			rootLine += strings.Repeat(" ", width-len(rootLine))
		}
	}

	connector := make([]byte, width)
	for i := range connector {
		connector[i] = ' '
	}
	if rootPos >= width {
		needed := rootPos - width + 1
		rootLine += strings.Repeat(" ", needed)
		connector = append(connector, make([]byte, needed)...)
		for i := width; i < len(connector); i++ {
			connector[i] = ' '
		}
		width = len(connector)
	}
	connector[rootPos] = '|'
	for _, pos := range positions {
		switch {
		case pos < rootPos:
			connector[pos] = '/'
		case pos > rootPos:
			connector[pos] = '\\'
		default:
			connector[pos] = '|'
		}
	}
	connectorLine := string(connector)

	childLines := make([]string, maxChildHeight)
	for row := range maxChildHeight {
		var sb strings.Builder
		if childPrefix > 0 {
			sb.WriteString(strings.Repeat(" ", childPrefix))
		}
		for i, block := range childBlocks {
			line := ""
			if row < len(block.lines) {
				line = block.lines[row]
			}
			if len(line) < block.width {
				line += strings.Repeat(" ", block.width-len(line))
			}
			sb.WriteString(line)
			if i != len(childBlocks)-1 {
				sb.WriteString(strings.Repeat(" ", spacing))
			}
		}
		rowStr := sb.String()
		if len(rowStr) < width {
			rowStr += strings.Repeat(" ", width-len(rowStr))
		}
		childLines[row] = rowStr
	}

	lines := make([]string, 0, 2+len(childLines))
	lines = append(lines, rootLine, connectorLine)
	lines = append(lines, childLines...)

	return treeBlock{lines: lines, width: width, root: rootPos}
}
