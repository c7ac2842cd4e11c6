package analyzer

// Aggregator folds document records into per-link statistics. It is not
// safe for concurrent use; records are added one at a time.
type Aggregator struct {
	stats map[string]*LinkStats
	order []string
}

// NewAggregator creates an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{
		stats: make(map[string]*LinkStats),
	}
}

// Add counts every link entry of the record once and notes the record's
// file as a contributor. Adding the same file twice for one link does not
// grow its file list.
func (a *Aggregator) Add(record DocumentRecord) {
	for _, link := range record.Links {
		stats, ok := a.stats[link]
		if !ok {
			stats = &LinkStats{files: make(map[string]struct{})}
			a.stats[link] = stats
			a.order = append(a.order, link)
		}

		stats.TotalOccurrences++
		if _, seen := stats.files[record.FileName]; !seen {
			stats.files[record.FileName] = struct{}{}
			stats.ContributingFiles = append(stats.ContributingFiles, record.FileName)
		}
	}
}

// lookup returns the statistics gathered for a link.
func (a *Aggregator) lookup(link string) (LinkStats, bool) {
	stats, ok := a.stats[link]
	if !ok {
		return LinkStats{}, false
	}

	return *stats, true
}

// Len returns the number of distinct links seen.
func (a *Aggregator) Len() int {
	return len(a.order)
}

// Duplicates returns the links found in more than one file, in the order
// the links were first seen.
func (a *Aggregator) Duplicates() []DuplicateLink {
	duplicates := []DuplicateLink{}

	for _, link := range a.order {
		stats := a.stats[link]
		if len(stats.ContributingFiles) < 2 {
			continue
		}

		files := make([]string, len(stats.ContributingFiles))
		copy(files, stats.ContributingFiles)

		duplicates = append(duplicates, DuplicateLink{
			Link:        link,
			Count:       stats.TotalOccurrences,
			SourceFiles: files,
		})
	}

	return duplicates
}
