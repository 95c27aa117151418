package xmlstream

// elementStack is the LIFO of open elements described by spec §4.3: each
// frame owns a copy of its element's local name (copied out of the feed
// buffer, since those bytes may be overwritten once consumed) and the path
// offset at which its "/name" segment begins, so popping can truncate the
// path in O(1).
type elementStack struct {
	names       [][]byte // stack-owned copies, reused across documents
	pathOffsets []int
	path        []byte
	maxDepth    int
	maxPathLen  int
}

func newElementStack(maxDepth, maxPathLen int) *elementStack {
	return &elementStack{
		names:       make([][]byte, 0, maxDepth),
		pathOffsets: make([]int, 0, maxDepth),
		path:        make([]byte, 0, maxPathLen),
		maxDepth:    maxDepth,
		maxPathLen:  maxPathLen,
	}
}

func (s *elementStack) reset(maxDepth, maxPathLen int) {
	s.maxDepth, s.maxPathLen = maxDepth, maxPathLen
	s.names = s.names[:0]
	s.pathOffsets = s.pathOffsets[:0]
	s.path = s.path[:0]
}

func (s *elementStack) depth() int { return len(s.names) }

// push opens a new element: copies name into stack-owned storage and
// appends "/"+name to the path. Returns KindNone on success, or the
// resource-error Kind if depth or path length limits are exceeded; the
// caller (tokenizer) attaches the current line/column.
func (s *elementStack) push(name []byte) Kind {
	if len(s.names) >= s.maxDepth {
		return KindNestingTooDeep
	}
	grown := len(s.path) + 1 + len(name)
	if grown > s.maxPathLen {
		return KindNestingTooDeep
	}

	offset := len(s.path)
	s.path = append(s.path, '/')
	s.path = append(s.path, name...)

	nameCopy := make([]byte, len(name))
	copy(nameCopy, name)

	s.names = append(s.names, nameCopy)
	s.pathOffsets = append(s.pathOffsets, offset)
	return KindNone
}

// top returns the innermost open element's name, or nil if the stack is empty.
func (s *elementStack) top() []byte {
	if len(s.names) == 0 {
		return nil
	}
	return s.names[len(s.names)-1]
}

// pop closes the innermost open element, truncating the path back to the
// offset recorded at push time. The caller must have already delivered the
// EndElement callback with the path still including this element (§4.3).
func (s *elementStack) pop() {
	n := len(s.names)
	if n == 0 {
		return
	}
	offset := s.pathOffsets[n-1]
	s.path = s.path[:offset]
	s.names = s.names[:n-1]
	s.pathOffsets = s.pathOffsets[:n-1]
}

// currentPath returns the live "/a/b/c" path; an empty stack yields "".
func (s *elementStack) currentPath() []byte { return s.path }
