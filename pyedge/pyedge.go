package pyedge

import (
	"context"

	"github.com/2x3systems/edgegame/edgegame"
	"github.com/2x3systems/edgegame/libgame"
	"github.com/2x3systems/edgegame/libgame/memo"
	"github.com/go-python/gpython/py"
)

var (
	LIB_VERSION = "v1.2026.1"
)

var (
	pyWorkspaceType = py.NewType("Workspace", "holds a memo table and the stores it is loaded from and saved to")
)

const (
	kWorkspaceAttr = "_Workspace"
)

// Workspace is the per-interpreter solving session: a memo table shared by every solve, plus an optional store.
type Workspace struct {
	StoreCtx edgegame.StoreContext
	Memo     *memo.Table
	store    edgegame.MemoStore
}

func NewWorkspace() *Workspace {
	return &Workspace{
		StoreCtx: edgegame.NewStoreContext(),
		Memo:     memo.NewTable(),
	}
}

func (ws *Workspace) Close() {
	ws.store = nil
	ws.StoreCtx.Close()
	<-ws.StoreCtx.Done()
}

func (ws *Workspace) Type() *py.Type {
	return pyWorkspaceType
}

func py_GetWorkspace(module py.Object, args py.Tuple) (py.Object, error) {
	wsObj, _ := py.GetAttrString(module, kWorkspaceAttr)
	if wsObj == nil {
		wsObj = NewWorkspace()
		py.SetAttrString(module, kWorkspaceAttr, wsObj)
	}
	return wsObj, nil
}

// Arg 1: edges (sequence of pairs or an edge run string)
// Returns (net, p1_score, p2_score)
func py_Workspace_Solve(self py.Object, args py.Tuple) (py.Object, error) {
	ws := self.(*Workspace)
	X, err := graphArg(args)
	if err != nil {
		return nil, err
	}

	out, err := libgame.NewSolver(ws.Memo, libgame.SolverOpts{}).Solve(context.Background(), X)
	if err != nil {
		return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
	}
	return py.Tuple{py.Int(out.NetScore), py.Int(out.P1Score), py.Int(out.P2Score)}, nil
}

// Arg 1 (str): store kind ("text", "badger", "redis")
// Arg 2 (str): pathname or redis URL
// Returns the number of entries loaded.
func py_Workspace_OpenMemo(self py.Object, args py.Tuple) (py.Object, error) {
	ws := self.(*Workspace)

	var kind, where string
	err := py.LoadTuple(args, []interface{}{&kind, &where})
	if err != nil {
		return nil, err
	}

	opts := edgegame.StoreOpts{
		Kind: edgegame.StoreKind(kind),
	}
	if opts.Kind == edgegame.StoreRedis {
		opts.RedisURL = where
	} else {
		opts.Pathname = where
	}

	if ws.store != nil {
		ws.store.Close()
		ws.store = nil
	}
	store, err := memo.Open(ws.StoreCtx, opts)
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	ws.store = store

	n, err := store.Load(context.Background(), ws.Memo)
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	return py.Int(n), nil
}

func py_Workspace_SaveMemo(self py.Object, args py.Tuple) (py.Object, error) {
	ws := self.(*Workspace)
	if ws.store == nil {
		return nil, py.ExceptionNewf(py.RuntimeError, "no memo store open")
	}
	if err := ws.store.Flush(context.Background(), ws.Memo); err != nil {
		return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
	}
	return py.None, nil
}

func py_Workspace_MemoSize(self py.Object, args py.Tuple) (py.Object, error) {
	ws := self.(*Workspace)
	return py.Int(ws.Memo.Len()), nil
}

// Arg 1: edges
func py_Signature(module py.Object, args py.Tuple) (py.Object, error) {
	X, err := graphArg(args)
	if err != nil {
		return nil, err
	}
	return py.String(X.Signature()), nil
}

// Arg 1: edges
func py_IsTree(module py.Object, args py.Tuple) (py.Object, error) {
	X, err := graphArg(args)
	if err != nil {
		return nil, err
	}
	if X.IsTree() {
		return py.True, nil
	}
	return py.False, nil
}

// Arg 1 (str): generator name
// Args 2..: generator params (int)
func py_Generate(module py.Object, args py.Tuple) (py.Object, error) {
	if len(args) == 0 {
		return nil, py.ExceptionNewf(py.TypeError, "Generate() needs a generator name")
	}
	name, ok := args[0].(py.String)
	if !ok {
		return nil, py.ExceptionNewf(py.TypeError, "expected generator name (got %v)", args[0].Type().Name)
	}
	params := make([]int, len(args)-1)
	for i, arg := range args[1:] {
		param, ok := arg.(py.Int)
		if !ok {
			return nil, py.ExceptionNewf(py.TypeError, "expected int param (got %v)", arg.Type().Name)
		}
		params[i] = int(param)
	}

	edges, err := libgame.Generate(string(name), params...)
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	return wrapEdges(edges), nil
}

func graphArg(args py.Tuple) (*libgame.Graph, error) {
	if len(args) != 1 {
		return nil, py.ExceptionNewf(py.TypeError, "expected 1 argument (got %d)", len(args))
	}
	edges, err := unwrapEdges(args[0])
	if err != nil {
		return nil, err
	}
	return libgame.NewGraph(edges), nil
}

// unwrapEdges accepts a tuple or list of int pairs, or an edge run string such as "0-1-2-0".
func unwrapEdges(obj py.Object) (edgegame.EdgeList, error) {
	var items []py.Object
	switch v := obj.(type) {
	case py.String:
		edges, err := libgame.ParseEdgeRuns(string(v))
		if err != nil {
			return nil, py.ExceptionNewf(py.ValueError, "%v", err)
		}
		return edges, nil
	case py.Tuple:
		items = v
	case *py.List:
		items = v.Items
	default:
		return nil, py.ExceptionNewf(py.TypeError, "expected edges (got %v)", obj.Type().Name)
	}

	edges := make(edgegame.EdgeList, 0, len(items))
	for i, item := range items {
		var pair []py.Object
		switch v := item.(type) {
		case py.Tuple:
			pair = v
		case *py.List:
			pair = v.Items
		}
		if len(pair) != 2 {
			return nil, py.ExceptionNewf(py.TypeError, "edge %d: expected a pair of ints", i)
		}
		va, okA := pair[0].(py.Int)
		vb, okB := pair[1].(py.Int)
		if !okA || !okB {
			return nil, py.ExceptionNewf(py.TypeError, "edge %d: expected a pair of ints", i)
		}
		edges = append(edges, edgegame.NewEdge(int(va), int(vb)))
	}
	return edges, nil
}

func wrapEdges(edges edgegame.EdgeList) py.Tuple {
	out := make(py.Tuple, len(edges))
	for i, e := range edges {
		out[i] = py.Tuple{py.Int(e.A), py.Int(e.B)}
	}
	return out
}

func init() {

	/////////////////////////////////
	// Workspace
	{
		pyWorkspaceType.Dict["Solve"] = py.MustNewMethod("Solve", py_Workspace_Solve, 0, "solves the given edges, returning (net, p1_score, p2_score)")
		pyWorkspaceType.Dict["OpenMemo"] = py.MustNewMethod("OpenMemo", py_Workspace_OpenMemo, 0, "opens a memo store and loads it into this workspace")
		pyWorkspaceType.Dict["SaveMemo"] = py.MustNewMethod("SaveMemo", py_Workspace_SaveMemo, 0, "")
		pyWorkspaceType.Dict["MemoSize"] = py.MustNewMethod("MemoSize", py_Workspace_MemoSize, 0, "")
	}

	{
		methods := []*py.Method{
			py.MustNewMethod("GetWorkspace", py_GetWorkspace, 0, ""),
			py.MustNewMethod("Signature", py_Signature, 0, "returns the canonical signature of the given edges"),
			py.MustNewMethod("IsTree", py_IsTree, 0, ""),
			py.MustNewMethod("Generate", py_Generate, 0, "returns the edges of a named graph family"),
		}

		globals := py.StringDict{
			"LIB_VERSION":  py.String(LIB_VERSION),
			"MEMO_DEFAULT": py.String(edgegame.DefaultMemoPathname),
		}

		py.RegisterModule(&py.ModuleImpl{
			Info: py.ModuleInfo{
				Name: "edgegame",
				Doc:  "edge-removal game solver",
			},
			Methods: methods,
			Globals: globals,
			OnContextClosed: func(m *py.Module) {
				wsObj, _ := py.GetAttrString(m, kWorkspaceAttr)
				if wsObj != nil {
					wsObj.(*Workspace).Close()
				}
			},
		})
	}
}
