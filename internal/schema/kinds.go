package schema

// ZGENERICALBUM multiplexes several logical entities; ZKIND is the numeric
// discriminator telling them apart. Values observed across generations.
const (
	KindAlbum         int64 = 2
	KindSharedAlbum   int64 = 1505
	KindImportSession int64 = 1506
	KindProject       int64 = 1508
	KindRootFolder    int64 = 3999
	KindFolder        int64 = 4000
)

// ZSHARE rows are multiplexed the same way: ZSCOPETYPE discriminates a
// classic moment share from a whole shared library scope.
const (
	ScopeMomentShare   int64 = 2
	ScopeSharedLibrary int64 = 4
)
