package taxonomy

import "github.com/crimson-sun/strictwatch/internal/model"

// Default returns the built-in detector table for Android StrictMode output.
func Default() []Detector {
	return []Detector{
		{
			Kind:     model.KindCustomSlowCall,
			Desc:     "Slow call flagged with StrictMode.noteSlowCall",
			Keywords: []string{"StrictModeCustomViolation", "CustomViolation"},
		},
		{
			Kind:     model.KindDiskRead,
			Desc:     "Disk read on a thread with a disk read policy",
			Keywords: []string{"StrictModeDiskReadViolation", "DiskReadViolation"},
		},
		{
			Kind:     model.KindDiskWrite,
			Desc:     "Disk write on a thread with a disk write policy",
			Keywords: []string{"StrictModeDiskWriteViolation", "DiskWriteViolation"},
		},
		{
			Kind:     model.KindNetwork,
			Desc:     "Network access on the main thread",
			Keywords: []string{"StrictModeNetworkViolation", ".NetworkViolation"},
		},
		{
			Kind:     model.KindResourceMismatch,
			Desc:     "Resource type does not match the requested type",
			Keywords: []string{"ResourceMismatchViolation"},
		},
		{
			Kind:     model.KindUnbufferedIO,
			Desc:     "Unbuffered input or output stream usage",
			Keywords: []string{"UnbufferedIoViolation"},
		},
		{
			Kind:     model.KindClassInstanceLimit,
			Desc:     "More live instances of a class than the configured limit",
			Keywords: []string{"InstanceCountViolation"},
		},
		{
			Kind:     model.KindCleartextNetwork,
			Desc:     "Unencrypted network traffic",
			Keywords: []string{"CleartextNetworkViolation", "Detected cleartext network traffic"},
		},
		{
			Kind:     model.KindContentURIWithoutPermission,
			Desc:     "content:// URI shared without a grant flag",
			Keywords: []string{"ContentUriWithoutPermissionViolation"},
		},
		{
			Kind:     model.KindFileURIExposure,
			Desc:     "file:// URI exposed to another app",
			Keywords: []string{"FileUriExposedViolation", "FileUriExposedException", "exposed beyond app through"},
		},
		{
			Kind:     model.KindUntaggedSocket,
			Desc:     "Socket used without a traffic stats tag",
			Keywords: []string{"UntaggedSocketViolation"},
		},
		{
			Kind:     model.KindNonSDKAPI,
			Desc:     "Reflection into non-SDK interfaces",
			Keywords: []string{"NonSdkApiUsedViolation"},
		},
		{
			Kind:     model.KindLeakedClosableObjects,
			Desc:     "Closeable resource finalized without close",
			Keywords: []string{"A resource was acquired at attached stack trace but never released"},
		},
		{
			Kind:     model.KindLeakedRegistrationObjects,
			Desc:     "Receiver or service connection leaked by a destroyed context",
			Keywords: []string{"was originally registered here"},
		},
		{
			Kind:     model.KindLeakedSQLiteObjects,
			Desc:     "SQLite cursor or connection finalized without close",
			Keywords: []string{"SQLiteCursor", "Finalizing a Cursor", "SQLiteConnection object for database"},
		},
	}
}
