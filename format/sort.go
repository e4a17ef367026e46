package format

import (
	"sort"

	"github.com/beanfmt/beanfmt/ast"
)

// sortKey is the deterministic fallback ordering used for the "unsorted"
// remainder of a prudent sort: (date, time-or-zero, original position).
type sortKey struct {
	date, time int64
	index      int
}

func lessKey(a, b sortKey) bool {
	if a.date != b.date {
		return a.date < b.date
	}
	if a.time != b.time {
		return a.time < b.time
	}
	return a.index < b.index
}

// prudentItem is the contract shared by the two granularities the prudent
// sort runs at: individual dated entries within a block, and whole blocks
// within a compartment. Both orderedEntry and orderedBlock implement it.
type prudentItem[T any] interface {
	canGoBefore(other T) bool
	max(other T) T
	min(other T) T
	morePermissive(other T) bool
	key() sortKey
}

// orderedEntry is the sort-relevant projection of a single dated entity:
// its date, an optional time tie-breaker (entryTime), and the item it came
// from (so a within-block reorder can rebuild the item list).
type orderedEntry struct {
	date      ast.Date
	time      int64
	hasTime   bool
	fileIndex int
	item      *ast.Item
}

// canGoBefore reports whether a may precede b: strictly earlier date, or
// equal date with a permissive (missing) time on either side, or a's time
// no later than b's.
func (a orderedEntry) canGoBefore(b orderedEntry) bool {
	if a.date.Time.Before(b.date.Time) {
		return true
	}
	if a.date.Time.After(b.date.Time) {
		return false
	}
	if !a.hasTime || !b.hasTime {
		return true
	}
	return a.time <= b.time
}

// entryBDominates reports whether b is the chronologically later (or
// equally-dated-but-more-specific) of a and b: the shared tie-break rule
// behind max.
func entryBDominates(a, b orderedEntry) bool {
	if a.date.Time.Before(b.date.Time) {
		return true
	}
	if a.date.Time.Equal(b.date.Time) {
		if !a.hasTime {
			return true
		}
		if b.hasTime && a.time < b.time {
			return true
		}
	}
	return false
}

// entryADominatesMin reports whether a is the earlier (or
// equally-dated-but-more-specific) of a and b: the tie-break rule behind
// min.
func entryADominatesMin(a, b orderedEntry) bool {
	if a.date.Time.Before(b.date.Time) {
		return true
	}
	if a.date.Time.Equal(b.date.Time) {
		if !b.hasTime {
			return true
		}
		if a.hasTime && a.time < b.time {
			return true
		}
	}
	return false
}

func (a orderedEntry) max(b orderedEntry) orderedEntry {
	if entryBDominates(a, b) {
		return b
	}
	return a
}

func (a orderedEntry) min(b orderedEntry) orderedEntry {
	if entryADominatesMin(a, b) {
		return a
	}
	return b
}

// morePermissive reports whether a imposes a strictly looser constraint on
// its successors than b does: an earlier date, or the same date with a
// missing time where b has one, or the same date with an earlier time.
func (a orderedEntry) morePermissive(b orderedEntry) bool {
	if a.date.Time.Before(b.date.Time) {
		return true
	}
	if !a.date.Time.Equal(b.date.Time) {
		return false
	}
	if !a.hasTime && b.hasTime {
		return true
	}
	return a.hasTime && b.hasTime && a.time < b.time
}

func (a orderedEntry) key() sortKey {
	t := int64(0)
	if a.hasTime {
		t = a.time
	}
	return sortKey{date: a.date.Time.Unix(), time: t, index: a.fileIndex}
}

func orderedEntryOf(it *ast.Item, fileIndex int) (orderedEntry, bool) {
	if it.Directive == nil {
		return orderedEntry{}, false
	}
	date := it.Directive.GetDate()
	if date == nil {
		return orderedEntry{}, false
	}
	t, ok := entryTime(date, it.Directive.GetMetadata())
	return orderedEntry{date: *date, time: t, hasTime: ok, fileIndex: fileIndex, item: it}, true
}

// orderedBlock summarizes a block's entries for sort purposes. A block
// with no dated entries (push/pop runs, pure comment/include blocks) is
// "undated": maximally permissive, free to slot anywhere in its
// compartment. A block with dated entries has already had those entries
// individually reordered by prudentSort (block is the possibly-rebuilt
// renderBlock, entries its sorted projection).
type orderedBlock struct {
	block      *renderBlock
	entries    []orderedEntry
	undated    bool
	minEntry   orderedEntry
	maxEntry   orderedEntry
	firstIndex int // index of this block's first entry in the original file
}

func newOrderedBlock(b *renderBlock, firstIndex int) orderedBlock {
	entries := make([]orderedEntry, 0, len(b.items))
	for i, it := range b.items {
		e, ok := orderedEntryOf(it, firstIndex+i)
		if !ok {
			return orderedBlock{block: b, undated: true, firstIndex: firstIndex}
		}
		entries = append(entries, e)
	}
	if len(entries) == 0 {
		return orderedBlock{block: b, undated: true, firstIndex: firstIndex}
	}

	entries = prudentSort(entries)

	block := b
	if rebuilt := rebuildBlock(b, entries); rebuilt != nil {
		block = rebuilt
	}

	ob := orderedBlock{block: block, entries: entries, firstIndex: firstIndex}
	ob.minEntry, ob.maxEntry = entries[0], entries[0]
	for _, e := range entries[1:] {
		ob.minEntry = ob.minEntry.min(e)
		ob.maxEntry = ob.maxEntry.max(e)
	}
	return ob
}

// rebuildBlock returns a new renderBlock whose items follow sorted's order,
// or nil if that order matches b's original item order already.
func rebuildBlock(b *renderBlock, sorted []orderedEntry) *renderBlock {
	changed := false
	for i, e := range sorted {
		if b.items[i] != e.item {
			changed = true
			break
		}
	}
	if !changed {
		return nil
	}
	items := make([]*ast.Item, len(sorted))
	for i, e := range sorted {
		items[i] = e.item
	}
	return &renderBlock{items: items}
}

// canGoBefore on blocks: an undated block can go anywhere; otherwise
// compare the predecessor's max entry against the successor's min entry.
func (a orderedBlock) canGoBefore(b orderedBlock) bool {
	if a.undated || b.undated {
		return true
	}
	return a.maxEntry.canGoBefore(b.minEntry)
}

func (a orderedBlock) max(b orderedBlock) orderedBlock {
	if a.undated {
		return b
	}
	if !b.undated && entryBDominates(a.maxEntry, b.maxEntry) {
		return b
	}
	return a
}

func (a orderedBlock) min(b orderedBlock) orderedBlock {
	if b.undated {
		return a
	}
	if !a.undated && entryADominatesMin(a.minEntry, b.minEntry) {
		return a
	}
	return b
}

// morePermissive approximates more_successor_permissive_than: an undated
// block accepts any successor; among dated blocks, compare their max
// entries.
func (a orderedBlock) morePermissive(b orderedBlock) bool {
	if a.undated {
		return !b.undated
	}
	if b.undated {
		return false
	}
	return a.maxEntry.morePermissive(b.maxEntry)
}

func (a orderedBlock) key() sortKey {
	if a.undated {
		return sortKey{index: a.firstIndex}
	}
	t := int64(0)
	if a.minEntry.hasTime {
		t = a.minEntry.time
	}
	return sortKey{date: a.minEntry.date.Time.Unix(), time: t, index: a.firstIndex}
}

// prudentSortBlocks sorts blocks within one compartment (a run that
// contains no push/pop/BlockComment-headed splitter block). Each block's
// own dated entries are first reordered individually (newOrderedBlock), so
// a run of several unblanked same-category entries collapsed into a single
// block — e.g. several consecutive balance/custom directives with no blank
// line between them — is fully reordered, not left untouched because the
// block partitioner happened to merge them. The blocks themselves are then
// sorted the same way.
//
// This keeps the spec's two headline guarantees at both granularities —
// the retained subsequence is never reordered, and an already-ordered
// input is returned untouched — and merges the unsorted remainder back in
// with the same run-interleaving scan used for entries. What it does not
// do is split a block in two to interleave part of it between two
// unsorted neighbors, the way the reference implementation's heap-based
// block merge can: a block always moves as one unit. See DESIGN.md.
func prudentSortBlocks(blocks []*renderBlock, baseIndex int) []*renderBlock {
	if len(blocks) == 0 {
		return blocks
	}

	ordered := make([]orderedBlock, len(blocks))
	idx := baseIndex
	for i, b := range blocks {
		ordered[i] = newOrderedBlock(b, idx)
		idx += len(b.items)
	}

	ordered = prudentSort(ordered)

	out := make([]*renderBlock, len(ordered))
	for i, ob := range ordered {
		out[i] = ob.block
	}
	return out
}

// prudentSort is the shared two-granularity algorithm from spec.md §4.8:
// identify the longest subsequence already compatible under canGoBefore
// (preserving its relative order untouched), sort what's left by a simple
// deterministic key, and merge it back in.
func prudentSort[T prudentItem[T]](items []T) []T {
	if len(items) <= 1 || isOrdered(items) {
		return items
	}
	sorted, unsorted := splitSortedUnsorted(items)
	sort.SliceStable(unsorted, func(i, j int) bool {
		return lessKey(unsorted[i].key(), unsorted[j].key())
	})
	return mergeOrdered(sorted, unsorted)
}

// isOrdered reports whether items is already non-decreasing under
// canGoBefore. This tracks a running max across the whole prefix (as the
// reference implementation does), not just the adjacent pair: a
// permissive (e.g. time-less) item in the middle of a run must not mask an
// earlier, more restrictive constraint still in force for a later item.
func isOrdered[T prudentItem[T]](items []T) bool {
	if len(items) == 0 {
		return true
	}
	runningMax := items[0]
	for _, it := range items[1:] {
		if !runningMax.canGoBefore(it) {
			return false
		}
		runningMax = runningMax.max(it)
	}
	return true
}

type chainState[T any] struct {
	length     int
	runningMax T
	prev       int
}

// splitSortedUnsorted finds a longest subsequence of items that is
// non-decreasing under canGoBefore (length ties broken toward the chain
// whose running max is more permissive for future successors) and returns
// it, plus everything else in original relative order.
func splitSortedUnsorted[T prudentItem[T]](items []T) (sorted, unsorted []T) {
	n := len(items)
	chain := make([]chainState[T], n)
	for i, it := range items {
		chain[i] = chainState[T]{length: 1, runningMax: it, prev: -1}
	}

	maxLen, last := 0, -1
	for i := 0; i < n; i++ {
		for j := 0; j < i; j++ {
			if !chain[j].runningMax.canGoBefore(items[i]) || chain[j].length+1 < chain[i].length {
				continue
			}
			candidate := chain[j].runningMax.max(items[i])
			if chain[j].length+1 > chain[i].length || candidate.morePermissive(chain[i].runningMax) {
				chain[i] = chainState[T]{length: chain[j].length + 1, runningMax: candidate, prev: j}
			}
		}
		if chain[i].length > maxLen {
			maxLen = chain[i].length
			last = i
		}
	}

	var unsortedRuns [][]T
	unsortedRuns = append(unsortedRuns, items[last+1:])
	for last >= 0 {
		sorted = append(sorted, items[last])
		prev := chain[last].prev
		unsortedRuns = append(unsortedRuns, items[prev+1:last])
		last = prev
	}
	for l, r := 0, len(sorted)-1; l < r; l, r = l+1, r-1 {
		sorted[l], sorted[r] = sorted[r], sorted[l]
	}
	for i := len(unsortedRuns) - 1; i >= 0; i-- {
		unsorted = append(unsorted, unsortedRuns[i]...)
	}
	return sorted, unsorted
}

// reversedRunningMin returns, for each index i, the min (under canGoBefore)
// of items[i:] — the tightest lower bound a run of sorted items still has
// to clear before it may interleave with everything from i onward.
func reversedRunningMin[T prudentItem[T]](items []T) []T {
	out := append([]T{}, items...)
	for i := len(out) - 2; i >= 0; i-- {
		out[i] = out[i].min(out[i+1])
	}
	return out
}

// mergeOrdered interleaves unsorted into sorted, preserving both lists'
// relative order. It walks both lists with a cursor each, comparing the
// next sorted item against unsorted's reversed running min so a whole run
// of sorted items that all precede everything remaining in unsorted is
// emitted in one step, then a whole run of unsorted items that all precede
// the next sorted item, alternating. This does not split an individual
// item (or, at block granularity, an individual block): see DESIGN.md.
func mergeOrdered[T prudentItem[T]](sorted, unsorted []T) []T {
	if len(unsorted) == 0 {
		return sorted
	}
	if len(sorted) == 0 {
		return unsorted
	}

	runningMin := reversedRunningMin(unsorted)
	var result []T
	cs, cu := 0, 0
	for cs < len(sorted) && cu < len(unsorted) {
		start := cs
		for cs < len(sorted) && sorted[cs].canGoBefore(runningMin[cu]) {
			cs++
		}
		if cs > start {
			result = append(result, sorted[start:cs]...)
		}
		if cs == len(sorted) {
			break
		}
		start = cu
		for cu < len(unsorted) && !sorted[cs].canGoBefore(runningMin[cu]) {
			cu++
		}
		result = append(result, unsorted[start:cu]...)
	}
	result = append(result, sorted[cs:]...)
	result = append(result, unsorted[cu:]...)
	return result
}
