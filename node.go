package umsg

// Transport is the embedder-supplied byte-stream interface.
//
// ReadByte is non-blocking: ok is false when no byte is available right now.
// Write reports whether every byte was accepted.
type Transport interface {
	ReadByte() (b byte, ok bool)
	Write(p []byte) bool
}

// Config fixes a Node's storage sizes and protocol version at construction.
type Config struct {
	// MaxPayloadSize bounds payloads built and accepted by this node.
	MaxPayloadSize int
	// MaxHandlers is the handler table capacity.
	MaxHandlers int
	// Version is the expected protocol version byte. Zero means 1.
	Version byte
}

// DefaultVersion is the protocol version used when Config.Version is zero.
const DefaultVersion byte = 1

// Node composes a Framer and a Router over a Transport into one
// receive/transmit engine. All storage is allocated at construction; Poll
// and Publish allocate nothing.
//
// Poll and Publish are not re-entrant: a handler must not call either.
type Node struct {
	transport Transport
	framer    *Framer
	router    *Router

	txFrame  []byte
	txPacket []byte
}

// NewNode wires a Framer sized for cfg.MaxPayloadSize to a Router with
// cfg.MaxHandlers slots over the given transport.
func NewNode(transport Transport, cfg Config) (*Node, error) {
	if transport == nil || cfg.MaxPayloadSize < 0 || cfg.MaxHandlers <= 0 {
		return nil, ErrInvalidParameter
	}
	version := cfg.Version
	if version == 0 {
		version = DefaultVersion
	}

	n := &Node{
		transport: transport,
		framer:    NewFramer(MaxPacketSize(cfg.MaxPayloadSize)),
		router:    NewRouter(version, cfg.MaxHandlers),
		txFrame:   make([]byte, MaxFrameSize(cfg.MaxPayloadSize)),
		txPacket:  make([]byte, MaxPacketSize(cfg.MaxPayloadSize)),
	}
	n.framer.OnPacket(n.router.OnPacket)
	return n, nil
}

// Framer exposes the underlying Framer.
func (n *Node) Framer() *Framer { return n.framer }

// Router exposes the underlying Router.
func (n *Node) Router() *Router { return n.router }

// Register installs a raw payload handler for msgID. Use Typed to adapt a
// schema-generated message handler.
func (n *Node) Register(msgID uint8, fn HandlerFunc) error {
	return n.router.Register(msgID, fn)
}

// Poll drains the transport and feeds every available byte into the
// deframer. It returns the count of bytes whose processing failed (framing,
// CRC, or dispatch); a single corrupted packet never stops the drain.
func (n *Node) Poll() int {
	errors := 0
	for {
		b, ok := n.transport.ReadByte()
		if !ok {
			return errors
		}
		if err := n.framer.ProcessByte(b); err != nil {
			errors++
		}
	}
}

// Publish builds a frame from (msgID, msgHash, payload), wraps it into a
// wire packet, and writes the whole packet to the transport.
func (n *Node) Publish(msgID uint8, msgHash uint32, payload []byte) error {
	frameLen, err := n.router.BuildFrame(msgID, msgHash, payload, n.txFrame)
	if err != nil {
		return err
	}
	packetLen, err := n.framer.CreatePacket(n.txFrame[:frameLen], n.txPacket)
	if err != nil {
		return err
	}
	if !n.transport.Write(n.txPacket[:packetLen]) {
		return ErrTransport
	}
	return nil
}

// PublishMsg encodes a schema-generated message and publishes it under its
// own schema hash. The message is encoded into the packet scratch buffer;
// BuildFrame copies it into the frame buffer before the packet encoding
// overwrites the scratch, so the aliasing is safe.
func (n *Node) PublishMsg(msgID uint8, msg Message) error {
	if msg == nil {
		return ErrInvalidParameter
	}
	payloadLen, err := msg.Encode(n.txPacket)
	if err != nil {
		return ErrInvalidParameter
	}
	return n.Publish(msgID, msg.MsgHash(), n.txPacket[:payloadLen])
}
