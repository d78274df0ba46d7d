package index

var (
	bEntries = []byte("entries") // slug -> EntryRecord
	bOrder   = []byte("order")   // position -> slug
	bBuilds  = []byte("builds")  // finishedAt -> BuildRecord
)
