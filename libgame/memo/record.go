package memo

import (
	"strconv"
	"strings"

	"github.com/2x3systems/edgegame/edgegame"
	"github.com/gogo/protobuf/proto"
	"github.com/pkg/errors"
)

// Record is the stored value of a solved signature in a badger store.
type Record struct {
	NetScore    int64  `protobuf:"zigzag64,1,opt,name=net_score,json=netScore,proto3" json:"net_score,omitempty"`
	NumVertices uint32 `protobuf:"varint,2,opt,name=num_vertices,json=numVertices,proto3" json:"num_vertices,omitempty"`
	NumEdges    uint32 `protobuf:"varint,3,opt,name=num_edges,json=numEdges,proto3" json:"num_edges,omitempty"`
}

func (m *Record) Reset()         { *m = Record{} }
func (m *Record) String() string { return proto.CompactTextString(m) }
func (*Record) ProtoMessage()    {}

// NewRecord forms the Record for a signature and its solved value.
func NewRecord(signature string, netScore int) (*Record, error) {
	Nv, Ne, err := SignatureSize(signature)
	if err != nil {
		return nil, err
	}
	return &Record{
		NetScore:    int64(netScore),
		NumVertices: uint32(Nv),
		NumEdges:    uint32(Ne),
	}, nil
}

func encodeRecord(rec *Record) ([]byte, error) {
	return proto.Marshal(rec)
}

func decodeRecord(buf []byte) (*Record, error) {
	rec := &Record{}
	if err := proto.Unmarshal(buf, rec); err != nil {
		return nil, errors.Wrap(edgegame.ErrMalformedRecord, err.Error())
	}
	return rec, nil
}

// SignatureSize returns the vertex and edge counts described by a canonical signature.
// Canonical IDs are dense, so the vertex count is one more than the highest ID.
func SignatureSize(signature string) (numVertices, numEdges int, err error) {
	if signature == "" {
		return 0, 0, nil
	}
	maxID := -1
	for _, part := range strings.Split(signature, "|") {
		a, b, ok := strings.Cut(part, "-")
		if !ok {
			return 0, 0, errors.Wrapf(edgegame.ErrMalformedRecord, "signature edge %q", part)
		}
		for _, field := range [2]string{a, b} {
			id, err := strconv.Atoi(field)
			if err != nil || id < 0 {
				return 0, 0, errors.Wrapf(edgegame.ErrMalformedRecord, "signature edge %q", part)
			}
			if id > maxID {
				maxID = id
			}
		}
		numEdges++
	}
	return maxID + 1, numEdges, nil
}
