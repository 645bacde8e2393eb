package machine

// TermKind classifies why a simulated program stopped.
type TermKind int

const (
	// TermExit is an invocation of the exit syscall.
	TermExit = TermKind(0)
	// TermSegFault is an access to invalid memory.
	TermSegFault = TermKind(1)
	// TermBusError is an access to a physically invalid address.
	TermBusError = TermKind(2)
)

func (k TermKind) String() string {
	switch k {
	case TermExit:
		return "exit"
	case TermSegFault:
		return "segmentation fault"
	case TermBusError:
		return "bus error"
	}
	return f("TermKind(%d)", int(k))
}

// TermCause is the reason a run ended. Once a cause is produced no
// further instruction executes.
type TermCause struct {
	Kind TermKind
	Code uint32 // exit code, meaningful for TermExit
}

// Exit builds the cause for a normal guest exit.
func Exit(code uint32) TermCause {
	return TermCause{Kind: TermExit, Code: code}
}

const (
	abnormalMask = uint8(0b1000_0000)
	normalMask   = uint8(0b0111_1111)
)

// HandleExit maps the cause to a process exit status, emitting any fault
// diagnostic on the simulated stderr stream. Faults carry the abnormal
// high bit in the status.
func (s *ProgramState[R]) HandleExit(cause TermCause) uint8 {
	switch cause.Kind {
	case TermExit:
		return uint8(cause.Code) & normalMask
	case TermSegFault:
		s.WriteStderr("Segmentation fault: 11\n")
		return 11 | abnormalMask
	case TermBusError:
		s.WriteStderr("bus error\n")
		return 10 | abnormalMask
	}
	panic(f("termination cause %v unknown", cause.Kind))
}

// WriteStderr appends diagnostic text to the captured stderr stream and
// echoes it to the process stream.
func (s *ProgramState[R]) WriteStderr(text string) {
	s.Priv.appendFile(2, []byte(text))
}
