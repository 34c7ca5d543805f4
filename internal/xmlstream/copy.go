package xmlstream

// CopyEvents reads all events from the src reader, writing them into the dst
// writer.
// Stops on first non-nil read or write error, returning the number of events
// written into dst and any error. Does not flush dst.
func CopyEvents(dst EventWriter, src EventReader) (n int, err error) {
	for src.HasNext() {
		var tok Token
		if tok, err = src.NextEvent(); err != nil {
			return n, err
		}
		if err = dst.WriteEvent(tok); err != nil {
			return n, err
		}
		n++
	}
	return n, ReaderError(src)
}

// CopyEventsFunc is like CopyEvents, but calls each for every event before it
// is written; a non-nil error from each stops the copy.
func CopyEventsFunc(dst EventWriter, src EventReader, each func(Token) error) (n int, err error) {
	for src.HasNext() {
		var tok Token
		if tok, err = src.NextEvent(); err != nil {
			return n, err
		}
		if err = each(tok); err != nil {
			return n, err
		}
		if err = dst.WriteEvent(tok); err != nil {
			return n, err
		}
		n++
	}
	return n, ReaderError(src)
}
