package model

// ViolationKind identifies a category of StrictMode violation.
// The zero value means the incident matched no detector.
type ViolationKind string

const (
	KindNone                        ViolationKind = ""
	KindCustomSlowCall              ViolationKind = "custom_slow_call"
	KindDiskRead                    ViolationKind = "disk_read"
	KindDiskWrite                   ViolationKind = "disk_write"
	KindNetwork                     ViolationKind = "network"
	KindResourceMismatch            ViolationKind = "resource_mismatch"
	KindUnbufferedIO                ViolationKind = "unbuffered_io"
	KindClassInstanceLimit          ViolationKind = "class_instance_limit"
	KindCleartextNetwork            ViolationKind = "cleartext_network"
	KindContentURIWithoutPermission ViolationKind = "content_uri_without_permission"
	KindFileURIExposure             ViolationKind = "file_uri_exposure"
	KindUntaggedSocket              ViolationKind = "untagged_socket"
	KindNonSDKAPI                   ViolationKind = "non_sdk_api"
	KindLeakedClosableObjects       ViolationKind = "leaked_closable_objects"
	KindLeakedRegistrationObjects   ViolationKind = "leaked_registration_objects"
	KindLeakedSQLiteObjects         ViolationKind = "leaked_sqlite_objects"
)

var kindNames = map[ViolationKind]string{
	KindCustomSlowCall:              "Custom Slow Call",
	KindDiskRead:                    "Disk Read",
	KindDiskWrite:                   "Disk Write",
	KindNetwork:                     "Network",
	KindResourceMismatch:            "Resource Mismatch",
	KindUnbufferedIO:                "Unbuffered IO",
	KindClassInstanceLimit:          "Class Instance Limit",
	KindCleartextNetwork:            "Cleartext Network",
	KindContentURIWithoutPermission: "Content URI Without Permission",
	KindFileURIExposure:             "File URI Exposure",
	KindUntaggedSocket:              "Untagged Socket",
	KindNonSDKAPI:                   "Non-SDK API Usage",
	KindLeakedClosableObjects:       "Leaked Closable Objects",
	KindLeakedRegistrationObjects:   "Leaked Registration Objects",
	KindLeakedSQLiteObjects:         "Leaked SQLite Objects",
}

// Name returns the human-readable violation name, or "" for KindNone and
// unknown kinds.
func (k ViolationKind) Name() string {
	return kindNames[k]
}

// Known reports whether k is one of the enumerated kinds.
func (k ViolationKind) Known() bool {
	_, ok := kindNames[k]
	return ok
}
