package jdwp

import "fmt"

type ErrorCode uint16

const (
	ErrNone                                = ErrorCode(0)
	ErrInvalidThread                       = ErrorCode(10)
	ErrInvalidThreadGroup                  = ErrorCode(11)
	ErrInvalidPriority                     = ErrorCode(12)
	ErrThreadNotSuspended                  = ErrorCode(13)
	ErrThreadSuspended                     = ErrorCode(14)
	ErrInvalidObject                       = ErrorCode(20)
	ErrInvalidClass                        = ErrorCode(21)
	ErrClassNotPrepared                    = ErrorCode(22)
	ErrInvalidMethodID                     = ErrorCode(23)
	ErrInvalidLocation                     = ErrorCode(24)
	ErrInvalidFieldID                      = ErrorCode(25)
	ErrInvalidFrameID                      = ErrorCode(30)
	ErrNoMoreFrames                        = ErrorCode(31)
	ErrOpaqueFrame                         = ErrorCode(32)
	ErrNotCurrentFrame                     = ErrorCode(33)
	ErrTypeMismatch                        = ErrorCode(34)
	ErrInvalidSlot                         = ErrorCode(35)
	ErrDuplicate                           = ErrorCode(40)
	ErrNotFound                            = ErrorCode(41)
	ErrInvalidMonitor                      = ErrorCode(50)
	ErrNotMonitorOwner                     = ErrorCode(51)
	ErrInterrupt                           = ErrorCode(52)
	ErrInvalidClassFormat                  = ErrorCode(60)
	ErrCircularClassDefinition             = ErrorCode(61)
	ErrFailsVerification                   = ErrorCode(62)
	ErrAddMethodNotImplemented             = ErrorCode(63)
	ErrSchemaChangeNotImplemented          = ErrorCode(64)
	ErrInvalidTypestate                    = ErrorCode(65)
	ErrHierarchyChangeNotImplemented       = ErrorCode(66)
	ErrDeleteMethodNotImplemented          = ErrorCode(67)
	ErrUnsupportedVersion                  = ErrorCode(68)
	ErrNamesDontMatch                      = ErrorCode(69)
	ErrClassModifiersChangeNotImplemented  = ErrorCode(70)
	ErrMethodModifiersChangeNotImplemented = ErrorCode(71)
	ErrNotImplemented                      = ErrorCode(99)
	ErrNullPointer                         = ErrorCode(100)
	ErrAbsentInformation                   = ErrorCode(101)
	ErrInvalidEventType                    = ErrorCode(102)
	ErrIllegalArgument                     = ErrorCode(103)
	ErrOutOfMemory                         = ErrorCode(110)
	ErrAccessDenied                        = ErrorCode(111)
	ErrVMDead                              = ErrorCode(112)
	ErrInternal                            = ErrorCode(113)
	ErrUnattachedThread                    = ErrorCode(115)
	ErrInvalidTag                          = ErrorCode(500)
	ErrAlreadyInvoking                     = ErrorCode(502)
	ErrInvalidIndex                        = ErrorCode(503)
	ErrInvalidLengthCode                   = ErrorCode(504)
	ErrInvalidString                       = ErrorCode(506)
	ErrInvalidClassLoader                  = ErrorCode(507)
	ErrInvalidArray                        = ErrorCode(508)
	ErrTransportLoad                       = ErrorCode(509)
	ErrTransportInit                       = ErrorCode(510)
	ErrNativeMethod                        = ErrorCode(511)
	ErrInvalidCount                        = ErrorCode(512)
	ErrHCROperationRefused                 = ErrorCode(900)
)

var errorNames = map[ErrorCode]string{
	ErrNone:                                "NONE",
	ErrInvalidThread:                       "INVALID_THREAD",
	ErrInvalidThreadGroup:                  "INVALID_THREAD_GROUP",
	ErrInvalidPriority:                     "INVALID_PRIORITY",
	ErrThreadNotSuspended:                  "THREAD_NOT_SUSPENDED",
	ErrThreadSuspended:                     "THREAD_SUSPENDED",
	ErrInvalidObject:                       "INVALID_OBJECT",
	ErrInvalidClass:                        "INVALID_CLASS",
	ErrClassNotPrepared:                    "CLASS_NOT_PREPARED",
	ErrInvalidMethodID:                     "INVALID_METHODID",
	ErrInvalidLocation:                     "INVALID_LOCATION",
	ErrInvalidFieldID:                      "INVALID_FIELDID",
	ErrInvalidFrameID:                      "INVALID_FRAMEID",
	ErrNoMoreFrames:                        "NO_MORE_FRAMES",
	ErrOpaqueFrame:                         "OPAQUE_FRAME",
	ErrNotCurrentFrame:                     "NOT_CURRENT_FRAME",
	ErrTypeMismatch:                        "TYPE_MISMATCH",
	ErrInvalidSlot:                         "INVALID_SLOT",
	ErrDuplicate:                           "DUPLICATE",
	ErrNotFound:                            "NOT_FOUND",
	ErrInvalidMonitor:                      "INVALID_MONITOR",
	ErrNotMonitorOwner:                     "NOT_MONITOR_OWNER",
	ErrInterrupt:                           "INTERRUPT",
	ErrInvalidClassFormat:                  "INVALID_CLASS_FORMAT",
	ErrCircularClassDefinition:             "CIRCULAR_CLASS_DEFINITION",
	ErrFailsVerification:                   "FAILS_VERIFICATION",
	ErrAddMethodNotImplemented:             "ADD_METHOD_NOT_IMPLEMENTED",
	ErrSchemaChangeNotImplemented:          "SCHEMA_CHANGE_NOT_IMPLEMENTED",
	ErrInvalidTypestate:                    "INVALID_TYPESTATE",
	ErrHierarchyChangeNotImplemented:       "HIERARCHY_CHANGE_NOT_IMPLEMENTED",
	ErrDeleteMethodNotImplemented:          "DELETE_METHOD_NOT_IMPLEMENTED",
	ErrUnsupportedVersion:                  "UNSUPPORTED_VERSION",
	ErrNamesDontMatch:                      "NAMES_DONT_MATCH",
	ErrClassModifiersChangeNotImplemented:  "CLASS_MODIFIERS_CHANGE_NOT_IMPLEMENTED",
	ErrMethodModifiersChangeNotImplemented: "METHOD_MODIFIERS_CHANGE_NOT_IMPLEMENTED",
	ErrNotImplemented:                      "NOT_IMPLEMENTED",
	ErrNullPointer:                         "NULL_POINTER",
	ErrAbsentInformation:                   "ABSENT_INFORMATION",
	ErrInvalidEventType:                    "INVALID_EVENT_TYPE",
	ErrIllegalArgument:                     "ILLEGAL_ARGUMENT",
	ErrOutOfMemory:                         "OUT_OF_MEMORY",
	ErrAccessDenied:                        "ACCESS_DENIED",
	ErrVMDead:                              "VM_DEAD",
	ErrInternal:                            "INTERNAL",
	ErrUnattachedThread:                    "UNATTACHED_THREAD",
	ErrInvalidTag:                          "INVALID_TAG",
	ErrAlreadyInvoking:                     "ALREADY_INVOKING",
	ErrInvalidIndex:                        "INVALID_INDEX",
	ErrInvalidLengthCode:                   "INVALID_LENGTH",
	ErrInvalidString:                       "INVALID_STRING",
	ErrInvalidClassLoader:                  "INVALID_CLASS_LOADER",
	ErrInvalidArray:                        "INVALID_ARRAY",
	ErrTransportLoad:                       "TRANSPORT_LOAD",
	ErrTransportInit:                       "TRANSPORT_INIT",
	ErrNativeMethod:                        "NATIVE_METHOD",
	ErrInvalidCount:                        "INVALID_COUNT",
	ErrHCROperationRefused:                 "HCR_OPERATION_REFUSED",
}

func (e ErrorCode) String() string {
	if n, ok := errorNames[e]; ok {
		return n
	}
	return fmt.Sprintf("UNKNOWN_ERROR_%d", uint16(e))
}
