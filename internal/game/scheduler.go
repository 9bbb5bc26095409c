package game

// Step advances the simulation by exactly one frame, following §4.J's
// fixed ordering: status ticks, behaviors, gravity, pre-move overlap
// correction, swept-axis collision with wall-escape, integration,
// spawn advance, collision-flag refresh, then the frame/status
// bookkeeping. It is the only place per-frame mutation happens; every
// helper it calls is a pure function of the GameState it's given.
func Step(gs *GameState) error {
	if gs == nil {
		return newError(ErrInvalidGameState, "Step: nil state")
	}
	if gs.Status != StatusPlaying {
		return nil
	}

	// 1. status ticks (passive regen + applied effects)
	TickStatusEffects(gs)

	// 2. behaviors (condition scan, action dispatch, at most one per
	// character per frame)
	RunBehaviors(gs)

	// 3. gravity
	for i := range gs.Characters {
		applyGravity(&gs.Characters[i].EntityCore, gs.Gravity)
	}
	for i := range gs.SpawnInstances {
		if gs.SpawnInstances[i].Alive {
			applyGravity(&gs.SpawnInstances[i].EntityCore, gs.Gravity)
		}
	}

	// 4. pre-move overlap correction (bounded push, §4.J step 4)
	for i := range gs.Characters {
		resolveOverlap(gs, &gs.Characters[i].EntityCore)
	}
	for i := range gs.SpawnInstances {
		if gs.SpawnInstances[i].Alive {
			resolveOverlap(gs, &gs.SpawnInstances[i].EntityCore)
		}
	}

	// 5. swept-axis collision + integration, with wall-escape (velocity
	// zeroed on the axis that hit something)
	for i := range gs.Characters {
		integrateMotion(gs, &gs.Characters[i].EntityCore)
	}
	for i := range gs.SpawnInstances {
		if gs.SpawnInstances[i].Alive {
			integrateMotion(gs, &gs.SpawnInstances[i].EntityCore)
		}
	}

	// 6. spawn advance: behavior/collision/despawn scripts, life_span
	// countdown
	AdvanceSpawns(gs)

	// 7. collision flag refresh (4-side probes), for scripts reading
	// collision_top/right/bottom/left next frame
	for i := range gs.Characters {
		refreshCollisionFlags(gs, &gs.Characters[i].EntityCore)
	}
	for i := range gs.SpawnInstances {
		if gs.SpawnInstances[i].Alive {
			refreshCollisionFlags(gs, &gs.SpawnInstances[i].EntityCore)
		}
	}

	// 8. frame increment / status transition
	gs.Frame++
	if gs.Frame >= TotalFrames {
		gs.Status = StatusEnded
	}

	return nil
}

func applyGravity(core *EntityCore, gravity Fixed) {
	core.VelY = core.VelY.Add(gravity.Mul(core.DirVertical.AsFixed()))
}

// resolveOverlap nudges an entity that is already embedded in solid
// tiles (e.g. a tile changed under it, or float accumulation pushed it
// in) out to the nearest free position, trying each cardinal direction
// up to maxOverlapPush pixels before giving up (§4.J step 4). Giving up
// leaves the entity embedded; the next frame's swept collision will
// still refuse to move it deeper along a blocked axis.
func resolveOverlap(gs *GameState, core *EntityCore) {
	rect := core.Rect()
	if !gs.Tilemap.ContainsOverlap(rect) {
		return
	}
	for push := int16(1); push <= maxOverlapPush; push++ {
		offset := FixedFromInt(push)
		candidates := [4]CollisionRect{
			{X: rect.X, Y: rect.Y.Sub(offset), W: rect.W, H: rect.H},
			{X: rect.X, Y: rect.Y.Add(offset), W: rect.W, H: rect.H},
			{X: rect.X.Sub(offset), Y: rect.Y, W: rect.W, H: rect.H},
			{X: rect.X.Add(offset), Y: rect.Y, W: rect.W, H: rect.H},
		}
		for _, candidate := range candidates {
			if !gs.Tilemap.RectVsTiles(candidate) {
				core.PosX, core.PosY = candidate.X, candidate.Y
				return
			}
		}
	}
}

// integrateMotion applies the entity's current velocity along each
// axis independently via swept tile collision, then clamps the result
// to the arena bounds. A hit normally zeroes that axis's velocity, but
// an entity already embedded in solid tile (e.g. a moving wall, or a
// spawn that landed inside one) is special-cased: if its velocity
// points the direction that reduces the overlap, it's left alone so
// the entity keeps working its way free frame over frame instead of
// permanently zeroing out and oscillating in place against the wall.
func integrateMotion(gs *GameState, core *EntityCore) {
	rect := core.Rect()
	allowedX, hitX := gs.Tilemap.SweepAxis(rect, core.VelX, 0)
	core.PosX = core.PosX.Add(allowedX)
	if hitX && !escapesOverlap(&gs.Tilemap, rect, 0, core.VelX) {
		core.VelX = 0
	}

	rect = core.Rect()
	allowedY, hitY := gs.Tilemap.SweepAxis(rect, core.VelY, 1)
	core.PosY = core.PosY.Add(allowedY)
	if hitY && !escapesOverlap(&gs.Tilemap, rect, 1, core.VelY) {
		core.VelY = 0
	}

	core.PosX, core.PosY = ClampToArena(core.PosX, core.PosY, core.SizeW, core.SizeH)
}

// escapesOverlap reports whether vel's sign along axis (0=x, 1=y) moves
// rect out of an existing tile overlap. It probes up to maxOverlapPush
// pixels each direction from rect, the same radius resolveOverlap uses;
// if rect isn't currently overlapping anything, or neither direction is
// a clean escape, it reports false so the caller falls back to zeroing.
func escapesOverlap(t *Tilemap, rect CollisionRect, axis int, vel Fixed) bool {
	if vel == 0 || !t.RectVsTiles(rect) {
		return false
	}

	for push := 1; push <= maxOverlapPush; push++ {
		offset := FixedFromInt(int16(push))
		pos, neg := rect, rect
		if axis == 0 {
			pos.X, neg.X = rect.X.Add(offset), rect.X.Sub(offset)
		} else {
			pos.Y, neg.Y = rect.Y.Add(offset), rect.Y.Sub(offset)
		}
		posClear, negClear := !t.RectVsTiles(pos), !t.RectVsTiles(neg)
		if posClear == negClear {
			continue // both still stuck, or both already clear: no signal yet
		}
		if posClear {
			return vel > 0
		}
		return vel < 0
	}
	return false
}

// refreshCollisionFlags re-probes all four sides so next frame's
// scripts see up-to-date collision_top/right/bottom/left (§4.J step 7).
func refreshCollisionFlags(gs *GameState, core *EntityCore) {
	rect := core.Rect()
	core.CollisionTop = gs.Tilemap.RectVsTiles(Probe(rect, SideTop))
	core.CollisionRight = gs.Tilemap.RectVsTiles(Probe(rect, SideRight))
	core.CollisionBottom = gs.Tilemap.RectVsTiles(Probe(rect, SideBottom))
	core.CollisionLeft = gs.Tilemap.RectVsTiles(Probe(rect, SideLeft))
}
