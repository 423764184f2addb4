package navmesh

// FilterLowHangingObstacles allows the formation of walkable regions that
// flow over low obstacles such as curbs and up structures such as
// stairways: if a non-walkable span sits directly below a walkable span and
// the step between their tops is within walkableClimb, the lower span is
// promoted to walkable too. Must run before FilterLedgeSpans, whose effect
// it would otherwise override.
func FilterLowHangingObstacles(ctx *BuildContext, walkableClimb int32, hf *SolidHeightfield) {
	ctx.StartTimer(TimerFilterLowHangingObstacles)
	defer ctx.StopTimer(TimerFilterLowHangingObstacles)

	w, h := hf.Width, hf.Height
	for y := int32(0); y < h; y++ {
		for x := int32(0); x < w; x++ {
			var prev *HeightSpan
			prevWalkable := false
			for s := hf.Spans[x+y*w]; s != nil; s = s.Next {
				walkable := s.Flags&FlagWalkable != 0
				if !walkable && prevWalkable {
					if iAbs(int32(s.Max)-int32(prev.Max)) <= walkableClimb {
						s.Flags |= FlagWalkable
					}
				}
				prevWalkable = walkable
				prev = s
			}
		}
	}
}

// FilterLedgeSpans clears the walkable flag from spans that sit on a ledge:
// a span is a ledge if, among the spans reachable in any of its four
// neighbor columns, the floor drop to the lowest one exceeds walkableClimb,
// or the spread between the floors of all reachable neighbors exceeds
// walkableClimb. This bounds the overestimation conservative voxelization
// introduces at cliff edges. The implicit floor below a neighbor column's
// first span, and the floor of an out-of-bounds neighbor, is taken at
// height -walkableClimb; every solid span's top is at least 1, so that drop
// always exceeds walkableClimb. The out-of-bounds branch records that drop
// and moves on to the next direction with `continue`.
func FilterLedgeSpans(ctx *BuildContext, walkableHeight, walkableClimb int32, hf *SolidHeightfield) {
	ctx.StartTimer(TimerFilterLedgeSpans)
	defer ctx.StopTimer(TimerFilterLedgeSpans)

	w, h := hf.Width, hf.Height
	const maxHeight = 0xffff

	for y := int32(0); y < h; y++ {
		for x := int32(0); x < w; x++ {
			for s := hf.Spans[x+y*w]; s != nil; s = s.Next {
				if s.Flags&FlagWalkable == 0 {
					continue
				}
				bot := int32(s.Max)
				top := int32(maxHeight)
				if s.Next != nil {
					top = int32(s.Next.Min)
				}

				minh := int32(maxHeight)
				asmin := int32(s.Max)
				asmax := int32(s.Max)

				for dir := int32(0); dir < 4; dir++ {
					dx := x + dirOffsetX[dir]
					dy := y + dirOffsetY[dir]
					if dx < 0 || dy < 0 || dx >= w || dy >= h {
						minh = iMin(minh, -walkableClimb-bot)
						continue
					}

					ns := hf.Spans[dx+dy*w]
					nbot := -walkableClimb
					ntop := int32(maxHeight)
					if ns != nil {
						ntop = int32(ns.Min)
					}
					if iMin(top, ntop)-iMax(bot, nbot) > walkableHeight {
						minh = iMin(minh, nbot-bot)
					}

					for ns = hf.Spans[dx+dy*w]; ns != nil; ns = ns.Next {
						nbot = int32(ns.Max)
						ntop = int32(maxHeight)
						if ns.Next != nil {
							ntop = int32(ns.Next.Min)
						}
						if iMin(top, ntop)-iMax(bot, nbot) > walkableHeight {
							minh = iMin(minh, nbot-bot)
							if iAbs(nbot-bot) <= walkableClimb {
								if nbot < asmin {
									asmin = nbot
								}
								if nbot > asmax {
									asmax = nbot
								}
							}
						}
					}
				}

				if minh < -walkableClimb {
					s.Flags &^= FlagWalkable
				} else if asmax-asmin > walkableClimb {
					s.Flags &^= FlagWalkable
				}
			}
		}
	}
}

// FilterLowHeightSpans clears the walkable flag from any span whose
// clearance to the span directly above it (or to the top of the field, if
// there is none) is at or below minTraversableHeight.
func FilterLowHeightSpans(ctx *BuildContext, minTraversableHeight int32, hf *SolidHeightfield) {
	ctx.StartTimer(TimerFilterLowHeightSpans)
	defer ctx.StopTimer(TimerFilterLowHeightSpans)

	w, h := hf.Width, hf.Height
	const maxHeight = 0xffff
	for y := int32(0); y < h; y++ {
		for x := int32(0); x < w; x++ {
			for s := hf.Spans[x+y*w]; s != nil; s = s.Next {
				top := int32(maxHeight)
				if s.Next != nil {
					top = int32(s.Next.Min)
				}
				if top-int32(s.Max) <= minTraversableHeight {
					s.Flags &^= FlagWalkable
				}
			}
		}
	}
}
