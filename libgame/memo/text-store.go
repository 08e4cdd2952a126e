package memo

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/2x3systems/edgegame/edgegame"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

const maxRecordLine = 16 << 20

// textStore persists a memo table as "signature,value" lines.
type textStore struct {
	ctx  edgegame.StoreContext
	opts edgegame.StoreOpts
}

// OpenTextStore returns a store backed by the text file opts.Pathname (edgegame.DefaultMemoPathname if empty).
// The file need not exist yet.
func OpenTextStore(ctx edgegame.StoreContext, opts edgegame.StoreOpts) (edgegame.MemoStore, error) {
	if opts.Pathname == "" {
		opts.Pathname = edgegame.DefaultMemoPathname
	}
	store := &textStore{
		ctx:  ctx,
		opts: opts,
	}
	if ctx != nil {
		ctx.AttachStore(store)
	}
	return store, nil
}

func (store *textStore) Desc() string {
	return "text:" + store.opts.Pathname
}

func (store *textStore) Load(ctx context.Context, dst edgegame.MemoTable) (int, error) {
	file, err := os.Open(store.opts.Pathname)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, errors.Wrapf(err, "open memo %q", store.opts.Pathname)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRecordLine)

	added := 0
	for lineNum := 1; scanner.Scan(); lineNum++ {
		if lineNum&0xFFF == 0 {
			if err := ctx.Err(); err != nil {
				return added, err
			}
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		sig, net, err := parseRecordLine(line)
		if err == nil {
			var isNew bool
			isNew, err = Merge(dst, sig, net)
			if isNew {
				added++
			}
		}
		if err != nil {
			err = errors.Wrapf(err, "%s:%d", store.opts.Pathname, lineNum)
			if !store.opts.SkipMalformed {
				return added, err
			}
			klog.Warningf("skipping record: %v", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return added, errors.Wrapf(err, "read memo %q", store.opts.Pathname)
	}
	return added, nil
}

// parseRecordLine splits "signature,value" at the last comma.
func parseRecordLine(line string) (sig string, net int, err error) {
	sep := strings.LastIndexByte(line, ',')
	if sep < 0 {
		return "", 0, errors.Wrap(edgegame.ErrMalformedRecord, "missing ','")
	}
	sig = strings.TrimSpace(line[:sep])
	net, err = strconv.Atoi(strings.TrimSpace(line[sep+1:]))
	if err != nil {
		return "", 0, errors.Wrapf(edgegame.ErrMalformedRecord, "value %q", line[sep+1:])
	}
	if _, _, err = SignatureSize(sig); err != nil {
		return "", 0, err
	}
	return sig, net, nil
}

// Flush rewrites the file with every entry of src, in signature order.
// Entries are written to a sibling temp file that replaces the original only once complete.
func (store *textStore) Flush(ctx context.Context, src edgegame.MemoTable) error {
	if store.opts.ReadOnly {
		return edgegame.ErrStoreReadOnly
	}
	pathname := store.opts.Pathname
	if dir := filepath.Dir(pathname); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "create memo dir %q", dir)
		}
	}

	tmp := pathname + ".tmp"
	err := writeRecords(ctx, tmp, src)
	if err == nil {
		err = os.Rename(tmp, pathname)
	}
	if err != nil {
		os.Remove(tmp)
		return errors.Wrapf(err, "write memo %q", pathname)
	}
	return nil
}

func writeRecords(ctx context.Context, pathname string, src edgegame.MemoTable) error {
	file, err := os.Create(pathname)
	if err != nil {
		return err
	}
	w := bufio.NewWriterSize(file, 256*1024)

	var buf []byte
	for i, sig := range SortedSignatures(src) {
		if i&0xFFF == 0 {
			if err = ctx.Err(); err != nil {
				break
			}
		}
		net, _ := src.Get(sig)
		buf = append(buf[:0], sig...)
		buf = append(buf, ',')
		buf = strconv.AppendInt(buf, int64(net), 10)
		buf = append(buf, '\n')
		if _, err = w.Write(buf); err != nil {
			break
		}
	}
	if err == nil {
		err = w.Flush()
	}
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	return err
}

func (store *textStore) Close() error {
	if store.ctx != nil {
		store.ctx.DetachStore(store)
		store.ctx = nil
	}
	return nil
}
