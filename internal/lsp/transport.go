package lsp

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// Transport is Content-Length-headed JSON-RPC 2.0 over stdio, grounded on
// the teacher's lsp.Transport (bufio reader, pending-id map, atomic id
// counter, background read loop). Two things differ from the teacher,
// both required by spec.md §5's concurrency model: sends never block the
// caller (a bounded outbox channel, drop-newest on overflow), and
// responses are never awaited inline — they land on a bounded Inbox
// channel that Session.Context drains once per frame.
type Transport struct {
	reader *bufio.Reader
	writer io.Writer
	closer io.Closer

	nextID atomic.Int64

	mu      sync.Mutex
	pending map[int64]struct{}

	outbox chan []byte
	inbox  chan Message

	closed atomic.Bool
	done   chan struct{}

	// Trace, when set, receives every frame's method/direction and a
	// pretty-printed copy of its JSON body -- the ambient LSP trace logger
	// described in SPEC_FULL.md §4.7, kept out of protocol logic.
	Trace func(direction, method string, body []byte)
}

// Message is one inbound frame, already triaged into response or
// notification form.
type Message struct {
	IsResponse bool
	ID         int64
	Method     string // notification method, or "" for a response
	Result     json.RawMessage
	Err        *RPCError
	Params     json.RawMessage
}

const (
	outboxCapacity = 64
	inboxCapacity  = 256
)

// NewTransport wraps r/w/c as a JSON-RPC transport. Start must be called
// before any Send/Notify traffic will actually move.
func NewTransport(r io.Reader, w io.Writer, c io.Closer) *Transport {
	return &Transport{
		reader:  bufio.NewReaderSize(r, 64*1024),
		writer:  w,
		closer:  c,
		pending: make(map[int64]struct{}),
		outbox:  make(chan []byte, outboxCapacity),
		inbox:   make(chan Message, inboxCapacity),
		done:    make(chan struct{}),
	}
}

// Start launches the writer and reader background tasks.
func (t *Transport) Start() {
	go t.writeLoop()
	go t.readLoop()
}

// Close stops both background tasks and closes the underlying connection.
func (t *Transport) Close() error {
	if t.closed.Swap(true) {
		return nil
	}
	close(t.done)
	if t.closer != nil {
		return t.closer.Close()
	}
	return nil
}

// Inbox is the channel Session.Context polls for responses/notifications.
func (t *Transport) Inbox() <-chan Message { return t.inbox }

// SendRequest assigns an id, frames a JSON-RPC request, and enqueues it for
// the write loop. It does not wait for a response -- the caller polls
// Inbox for the matching id. Returns ErrQueueFull if the outbox is backed
// up (spec.md §5: "drop newest with error on overflow").
func (t *Transport) SendRequest(method string, params any) (int64, error) {
	if t.closed.Load() {
		return 0, ErrShutdown
	}
	id := t.nextID.Add(1)

	data, err := json.Marshal(struct {
		JSONRPC string `json:"jsonrpc"`
		ID      int64  `json:"id"`
		Method  string `json:"method"`
		Params  any    `json:"params,omitempty"`
	}{"2.0", id, method, params})
	if err != nil {
		return 0, fmt.Errorf("marshal request: %w", err)
	}

	t.mu.Lock()
	t.pending[id] = struct{}{}
	t.mu.Unlock()

	if err := t.enqueue(data); err != nil {
		t.mu.Lock()
		delete(t.pending, id)
		t.mu.Unlock()
		return 0, err
	}
	t.traceOut(method, data)
	return id, nil
}

// Notify sends a fire-and-forget notification.
func (t *Transport) Notify(method string, params any) error {
	if t.closed.Load() {
		return ErrShutdown
	}
	data, err := json.Marshal(struct {
		JSONRPC string `json:"jsonrpc"`
		Method  string `json:"method"`
		Params  any    `json:"params,omitempty"`
	}{"2.0", method, params})
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	if err := t.enqueue(data); err != nil {
		return err
	}
	t.traceOut(method, data)
	return nil
}

// BuildIncremental assembles a JSON object incrementally with sjson rather
// than through an intermediate map[string]any, for outgoing params built up
// from several independent config sources (e.g. initializationOptions
// merging file-type and workspace settings).
func BuildIncremental(pairs ...[2]string) ([]byte, error) {
	doc := []byte("{}")
	var err error
	for _, kv := range pairs {
		doc, err = sjson.SetBytes(doc, kv[0], kv[1])
		if err != nil {
			return nil, fmt.Errorf("sjson set %s: %w", kv[0], err)
		}
	}
	return doc, nil
}

func (t *Transport) enqueue(data []byte) error {
	select {
	case t.outbox <- data:
		return nil
	default:
		return ErrQueueFull
	}
}

func (t *Transport) writeLoop() {
	for {
		select {
		case <-t.done:
			return
		case data := <-t.outbox:
			header := fmt.Sprintf("Content-Length: %d\r\n\r\n", len(data))
			if _, err := io.WriteString(t.writer, header); err != nil {
				return
			}
			if _, err := t.writer.Write(data); err != nil {
				return
			}
		}
	}
}

func (t *Transport) readLoop() {
	for {
		select {
		case <-t.done:
			return
		default:
		}
		raw, err := t.readFrame()
		if err != nil {
			return
		}
		msg, ok := t.triage(raw)
		if !ok {
			continue
		}
		select {
		case t.inbox <- msg:
		default:
			// Inbox backed up: drop rather than block the read loop, per
			// spec.md §5's non-blocking receive contract.
		}
	}
}

func (t *Transport) readFrame() ([]byte, error) {
	var contentLength int
	for {
		line, err := t.reader.ReadString('\n')
		if err != nil {
			return nil, err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			break
		}
		if strings.HasPrefix(strings.ToLower(line), "content-length:") {
			parts := strings.SplitN(line, ":", 2)
			if len(parts) == 2 {
				if n, err := strconv.Atoi(strings.TrimSpace(parts[1])); err == nil {
					contentLength = n
				}
			}
		}
	}
	if contentLength == 0 {
		return nil, fmt.Errorf("missing Content-Length header")
	}
	body := make([]byte, contentLength)
	if _, err := io.ReadFull(t.reader, body); err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

// triage classifies a raw frame using gjson field probes rather than a
// full struct decode, per SPEC_FULL.md §4.7 -- the hot read-loop path only
// needs "method" and "id" to route the frame; the payload itself is
// decoded later, by whichever handler owns that response kind.
func (t *Transport) triage(raw []byte) (Message, bool) {
	idResult := gjson.GetBytes(raw, "id")
	methodResult := gjson.GetBytes(raw, "method")

	if methodResult.Exists() {
		t.traceIn(methodResult.String(), raw)
		return Message{
			Method: methodResult.String(),
			Params: json.RawMessage(gjson.GetBytes(raw, "params").Raw),
		}, true
	}

	if !idResult.Exists() {
		return Message{}, false
	}
	id := idResult.Int()

	t.mu.Lock()
	_, known := t.pending[id]
	if known {
		delete(t.pending, id)
	}
	t.mu.Unlock()
	if !known {
		return Message{}, false
	}

	t.traceIn(fmt.Sprintf("response#%d", id), raw)

	msg := Message{IsResponse: true, ID: id}
	if errResult := gjson.GetBytes(raw, "error"); errResult.Exists() {
		var rpcErr RPCError
		if err := json.Unmarshal([]byte(errResult.Raw), &rpcErr); err == nil {
			msg.Err = &rpcErr
		}
	} else {
		msg.Result = json.RawMessage(gjson.GetBytes(raw, "result").Raw)
	}
	return msg, true
}

func (t *Transport) traceOut(method string, body []byte) {
	if t.Trace == nil {
		return
	}
	t.Trace("->", method, pretty.Pretty(body))
}

func (t *Transport) traceIn(method string, body []byte) {
	if t.Trace == nil {
		return
	}
	t.Trace("<-", method, pretty.Pretty(body))
}
