package md

// seg is one node of the inline content chain being assembled during a
// single ParseInline call: the ordered sequence of everything produced so
// far, some of it still a "live" delimiter run that Phase B may yet
// rewrite. Modeled as a doubly linked list (rather than a flat slice,
// unlike the teacher's append-only buffer) because Phase B needs to splice
// arbitrary ranges into new Emphasis/Link/Image nodes in place.
type seg struct {
	prev, next *seg
	node       Inline
	d          *delim
}

// delim is a live delimiter run: an emphasis run ('*' or '_') or a bracket
// ('[' or '!', i.e. the start of a link or image). It lives in two chains
// at once: the content chain via seg, and the delimiter stack via
// prevD/nextD, ported from the teacher's processEmphasis
// (src.elv.sh/pkg/md).
type delim struct {
	typ               byte
	seg               *seg
	n                 int
	canOpen, canClose bool
	inactive          bool
	prevD, nextD      *delim
}

func textOf(s *seg) string {
	return s.node.(*RawText).Text
}

func collectBetween(from, to *seg) []Inline {
	var out []Inline
	for s := from; s != to; s = s.next {
		out = append(out, s.node)
	}
	return out
}

// unlinkRange removes every seg in [from, to) from the content chain,
// leaving from.prev linked directly to to.
func unlinkRange(from, to *seg) {
	if from == to {
		return
	}
	p := from.prev
	p.next = to
	to.prev = p
}

func insertBetween(a, b, s *seg) {
	s.prev, s.next = a, b
	a.next, b.prev = s, s
}

func removeSeg(s *seg) {
	s.prev.next = s.next
	s.next.prev = s.prev
}

func removeDelimFromStack(d *delim) {
	d.prevD.nextD = d.nextD
	if d.nextD != nil {
		d.nextD.prevD = d.prevD
	}
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

// processEmphasis resolves every `*`/`_` delimiter strictly after fromD
// (exclusive) in the delimiter stack into Emphasis/StrongEmphasis nodes,
// mutating the content chain in place. Ported line-for-line from the
// teacher's processEmphasis, generalized to splice tree nodes instead of
// markup strings. It differs from a fully spec-precise implementation in
// one respect: an opener's original run length, not its post-consumption
// remainder, is reused when searching for further pairings (the teacher's
// own simplification).
func processEmphasis(fromD *delim) {
	var openersBottom [2][3][2]*delim

	closer := fromD.nextD
	for closer != nil {
		if closer.typ != '*' && closer.typ != '_' {
			closer = closer.nextD
			continue
		}
		if !closer.canClose {
			closer = closer.nextD
			continue
		}
		bucket := &openersBottom[b2i(closer.typ == '_')][closer.n%3][b2i(closer.canOpen)]
		if *bucket == nil {
			*bucket = fromD
		}
		var opener *delim
		for d := closer.prevD; d != *bucket && d != nil; d = d.prevD {
			if d.typ == closer.typ && d.canOpen &&
				((!d.canClose && !closer.canOpen) || (d.n+closer.n)%3 != 0 || (d.n%3 == 0 && closer.n%3 == 0)) {
				opener = d
				break
			}
		}
		if opener == nil {
			*bucket = closer.prevD
			if !closer.canOpen {
				next := closer.nextD
				removeDelimFromStack(closer)
				closer = next
			} else {
				closer = closer.nextD
			}
			continue
		}

		strong := len(textOf(opener.seg)) >= 2 && len(textOf(closer.seg)) >= 2
		consumed := 1
		if strong {
			consumed = 2
		}

		children := collectBetween(opener.seg.next, closer.seg)
		unlinkRange(opener.seg.next, closer.seg)

		var newNode Inline
		if strong {
			newNode = &StrongEmphasis{Children: children}
		} else {
			newNode = &Emphasis{Children: children}
		}

		openerRun := textOf(opener.seg)
		closerRun := textOf(closer.seg)
		openerLeftover := openerRun[:len(openerRun)-consumed]
		closerLeftover := closerRun[consumed:]

		if openerLeftover != "" {
			opener.seg.node = &RawText{Text: openerLeftover, Escape: true}
			ns := &seg{node: newNode}
			insertBetween(opener.seg, closer.seg, ns)
		} else {
			opener.seg.node = newNode
			opener.seg.d = nil
		}

		closerContinues := closerLeftover != ""
		if closerContinues {
			closer.seg.node = &RawText{Text: closerLeftover, Escape: true}
		} else {
			removeSeg(closer.seg)
		}

		opener.nextD = closer
		closer.prevD = opener
		if openerLeftover == "" {
			removeDelimFromStack(opener)
		}
		if !closerContinues {
			next := closer.nextD
			removeDelimFromStack(closer)
			closer = next
		}
	}
}
