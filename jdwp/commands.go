package jdwp

import "fmt"

type (
	CommandSet uint8

	// Command identifies a command inside its set, encoded as 256*set + code.
	Command uint16
)

const (
	VirtualMachine       = CommandSet(1)
	ReferenceType        = CommandSet(2)
	ClassType            = CommandSet(3)
	ArrayType            = CommandSet(4)
	InterfaceType        = CommandSet(5)
	Method               = CommandSet(6)
	Field                = CommandSet(8)
	ObjectReference      = CommandSet(9)
	StringReference      = CommandSet(10)
	ThreadReference      = CommandSet(11)
	ThreadGroupReference = CommandSet(12)
	ArrayReference       = CommandSet(13)
	ClassLoaderReference = CommandSet(14)
	EventRequest         = CommandSet(15)
	StackFrame           = CommandSet(16)
	ClassObjectReference = CommandSet(17)
	Event                = CommandSet(64)
	HotCodeReplacement   = CommandSet(128)
)

func NewCommand(set CommandSet, code uint8) Command {
	return Command(uint16(set)<<8 | uint16(code))
}

func (c Command) Set() CommandSet { return CommandSet(c >> 8) }

func (c Command) Code() uint8 { return uint8(c) }

// Known reports whether c is part of the command tables.
func (c Command) Known() bool {
	_, ok := commandNames[c]
	return ok
}

// Name returns only the command part of the name, e.g. "VERSION".
func (c Command) Name() string {
	if n, ok := commandNames[c]; ok {
		return n
	}
	return fmt.Sprintf("UNKNOWN_%d", c.Code())
}

func (c Command) String() string {
	return fmt.Sprintf("%v - %v", c.Set(), c.Name())
}

func (s CommandSet) Known() bool {
	_, ok := commandSetNames[s]
	return ok
}

func (s CommandSet) String() string {
	if n, ok := commandSetNames[s]; ok {
		return n
	}
	return fmt.Sprintf("UNKNOWN_SET_%d", uint8(s))
}

const (
	VMVersion               = Command(uint16(VirtualMachine)<<8 | 1)
	VMClassesBySignature    = Command(uint16(VirtualMachine)<<8 | 2)
	VMAllClasses            = Command(uint16(VirtualMachine)<<8 | 3)
	VMAllThreads            = Command(uint16(VirtualMachine)<<8 | 4)
	VMTopLevelThreadGroups  = Command(uint16(VirtualMachine)<<8 | 5)
	VMDispose               = Command(uint16(VirtualMachine)<<8 | 6)
	VMIDSizes               = Command(uint16(VirtualMachine)<<8 | 7)
	VMSuspend               = Command(uint16(VirtualMachine)<<8 | 8)
	VMResume                = Command(uint16(VirtualMachine)<<8 | 9)
	VMExit                  = Command(uint16(VirtualMachine)<<8 | 10)
	VMCreateString          = Command(uint16(VirtualMachine)<<8 | 11)
	VMCapabilities          = Command(uint16(VirtualMachine)<<8 | 12)
	VMClassPaths            = Command(uint16(VirtualMachine)<<8 | 13)
	VMDisposeObjects        = Command(uint16(VirtualMachine)<<8 | 14)
	VMHoldEvents            = Command(uint16(VirtualMachine)<<8 | 15)
	VMReleaseEvents         = Command(uint16(VirtualMachine)<<8 | 16)
	VMCapabilitiesNew       = Command(uint16(VirtualMachine)<<8 | 17)
	VMRedefineClasses       = Command(uint16(VirtualMachine)<<8 | 18)
	VMSetDefaultStratum     = Command(uint16(VirtualMachine)<<8 | 19)
	VMAllClassesWithGeneric = Command(uint16(VirtualMachine)<<8 | 20)

	RTSignature            = Command(uint16(ReferenceType)<<8 | 1)
	RTClassLoader          = Command(uint16(ReferenceType)<<8 | 2)
	RTModifiers            = Command(uint16(ReferenceType)<<8 | 3)
	RTFields               = Command(uint16(ReferenceType)<<8 | 4)
	RTMethods              = Command(uint16(ReferenceType)<<8 | 5)
	RTGetValues            = Command(uint16(ReferenceType)<<8 | 6)
	RTSourceFile           = Command(uint16(ReferenceType)<<8 | 7)
	RTNestedTypes          = Command(uint16(ReferenceType)<<8 | 8)
	RTStatus               = Command(uint16(ReferenceType)<<8 | 9)
	RTInterfaces           = Command(uint16(ReferenceType)<<8 | 10)
	RTClassObject          = Command(uint16(ReferenceType)<<8 | 11)
	RTSourceDebugExtension = Command(uint16(ReferenceType)<<8 | 12)
	RTSignatureWithGeneric = Command(uint16(ReferenceType)<<8 | 13)
	RTFieldsWithGeneric    = Command(uint16(ReferenceType)<<8 | 14)
	RTMethodsWithGeneric   = Command(uint16(ReferenceType)<<8 | 15)

	CTSuperclass   = Command(uint16(ClassType)<<8 | 1)
	CTSetValues    = Command(uint16(ClassType)<<8 | 2)
	CTInvokeMethod = Command(uint16(ClassType)<<8 | 3)
	CTNewInstance  = Command(uint16(ClassType)<<8 | 4)

	ATNewInstance = Command(uint16(ArrayType)<<8 | 1)

	MLineTable                = Command(uint16(Method)<<8 | 1)
	MVariableTable            = Command(uint16(Method)<<8 | 2)
	MBytecodes                = Command(uint16(Method)<<8 | 3)
	MIsObsolete               = Command(uint16(Method)<<8 | 4)
	MVariableTableWithGeneric = Command(uint16(Method)<<8 | 5)

	ORReferenceType     = Command(uint16(ObjectReference)<<8 | 1)
	ORGetValues         = Command(uint16(ObjectReference)<<8 | 2)
	ORSetValues         = Command(uint16(ObjectReference)<<8 | 3)
	ORMonitorInfo       = Command(uint16(ObjectReference)<<8 | 5)
	ORInvokeMethod      = Command(uint16(ObjectReference)<<8 | 6)
	ORDisableCollection = Command(uint16(ObjectReference)<<8 | 7)
	OREnableCollection  = Command(uint16(ObjectReference)<<8 | 8)
	ORIsCollected       = Command(uint16(ObjectReference)<<8 | 9)

	SRValue = Command(uint16(StringReference)<<8 | 1)

	TRName                    = Command(uint16(ThreadReference)<<8 | 1)
	TRSuspend                 = Command(uint16(ThreadReference)<<8 | 2)
	TRResume                  = Command(uint16(ThreadReference)<<8 | 3)
	TRStatus                  = Command(uint16(ThreadReference)<<8 | 4)
	TRThreadGroup             = Command(uint16(ThreadReference)<<8 | 5)
	TRFrames                  = Command(uint16(ThreadReference)<<8 | 6)
	TRFrameCount              = Command(uint16(ThreadReference)<<8 | 7)
	TROwnedMonitors           = Command(uint16(ThreadReference)<<8 | 8)
	TRCurrentContendedMonitor = Command(uint16(ThreadReference)<<8 | 9)
	TRStop                    = Command(uint16(ThreadReference)<<8 | 10)
	TRInterrupt               = Command(uint16(ThreadReference)<<8 | 11)
	TRSuspendCount            = Command(uint16(ThreadReference)<<8 | 12)
	TRPopTopFrame             = Command(uint16(ThreadReference)<<8 | 13)

	TGRName     = Command(uint16(ThreadGroupReference)<<8 | 1)
	TGRParent   = Command(uint16(ThreadGroupReference)<<8 | 2)
	TGRChildren = Command(uint16(ThreadGroupReference)<<8 | 3)

	ARLength    = Command(uint16(ArrayReference)<<8 | 1)
	ARGetValues = Command(uint16(ArrayReference)<<8 | 2)
	ARSetValues = Command(uint16(ArrayReference)<<8 | 3)

	CLRVisibleClasses = Command(uint16(ClassLoaderReference)<<8 | 1)

	ERSet                 = Command(uint16(EventRequest)<<8 | 1)
	ERClear               = Command(uint16(EventRequest)<<8 | 2)
	ERClearAllBreakpoints = Command(uint16(EventRequest)<<8 | 3)

	SFGetValues  = Command(uint16(StackFrame)<<8 | 1)
	SFSetValues  = Command(uint16(StackFrame)<<8 | 2)
	SFThisObject = Command(uint16(StackFrame)<<8 | 3)
	SFPopFrame   = Command(uint16(StackFrame)<<8 | 4)

	CORReflectedType = Command(uint16(ClassObjectReference)<<8 | 1)

	EComposite = Command(uint16(Event)<<8 | 100)

	HCRClassesHaveChanged = Command(uint16(HotCodeReplacement)<<8 | 1)
	HCRGetClassVersion    = Command(uint16(HotCodeReplacement)<<8 | 2)
	HCRDoReturn           = Command(uint16(HotCodeReplacement)<<8 | 3)
	HCRReenterOnExit      = Command(uint16(HotCodeReplacement)<<8 | 4)
	HCRCapabilities       = Command(uint16(HotCodeReplacement)<<8 | 5)
)

var commandSetNames = map[CommandSet]string{
	VirtualMachine:       "VIRTUAL_MACHINE",
	ReferenceType:        "REFERENCE_TYPE",
	ClassType:            "CLASS_TYPE",
	ArrayType:            "ARRAY_TYPE",
	InterfaceType:        "INTERFACE_TYPE",
	Method:               "METHOD",
	Field:                "FIELD",
	ObjectReference:      "OBJECT_REFERENCE",
	StringReference:      "STRING_REFERENCE",
	ThreadReference:      "THREAD_REFERENCE",
	ThreadGroupReference: "THREAD_GROUP_REFERENCE",
	ArrayReference:       "ARRAY_REFERENCE",
	ClassLoaderReference: "CLASS_LOADER_REFERENCE",
	EventRequest:         "EVENT_REQUEST",
	StackFrame:           "STACK_FRAME",
	ClassObjectReference: "CLASS_OBJECT_REFERENCE",
	Event:                "EVENT",
	HotCodeReplacement:   "HOT_CODE_REPLACEMENT",
}

var commandNames = map[Command]string{
	VMVersion:               "VERSION",
	VMClassesBySignature:    "CLASSES_BY_SIGNATURE",
	VMAllClasses:            "ALL_CLASSES",
	VMAllThreads:            "ALL_THREADS",
	VMTopLevelThreadGroups:  "TOP_LEVEL_THREAD_GROUPS",
	VMDispose:               "DISPOSE",
	VMIDSizes:               "ID_SIZES",
	VMSuspend:               "SUSPEND",
	VMResume:                "RESUME",
	VMExit:                  "EXIT",
	VMCreateString:          "CREATE_STRING",
	VMCapabilities:          "CAPABILITIES",
	VMClassPaths:            "CLASS_PATHS",
	VMDisposeObjects:        "DISPOSE_OBJECTS",
	VMHoldEvents:            "HOLD_EVENTS",
	VMReleaseEvents:         "RELEASE_EVENTS",
	VMCapabilitiesNew:       "CAPABILITIES_NEW",
	VMRedefineClasses:       "REDEFINE_CLASSES",
	VMSetDefaultStratum:     "SET_DEFAULT_STRATUM",
	VMAllClassesWithGeneric: "ALL_CLASSES_WITH_GENERIC",

	RTSignature:            "SIGNATURE",
	RTClassLoader:          "CLASS_LOADER",
	RTModifiers:            "MODIFIERS",
	RTFields:               "FIELDS",
	RTMethods:              "METHODS",
	RTGetValues:            "GET_VALUES",
	RTSourceFile:           "SOURCE_FILE",
	RTNestedTypes:          "NESTED_TYPES",
	RTStatus:               "STATUS",
	RTInterfaces:           "INTERFACES",
	RTClassObject:          "CLASS_OBJECT",
	RTSourceDebugExtension: "SOURCE_DEBUG_EXTENSION",
	RTSignatureWithGeneric: "SIGNATURE_WITH_GENERIC",
	RTFieldsWithGeneric:    "FIELDS_WITH_GENERIC",
	RTMethodsWithGeneric:   "METHODS_WITH_GENERIC",

	CTSuperclass:   "SUPERCLASS",
	CTSetValues:    "SET_VALUES",
	CTInvokeMethod: "INVOKE_METHOD",
	CTNewInstance:  "NEW_INSTANCE",

	ATNewInstance: "NEW_INSTANCE",

	MLineTable:                "LINE_TABLE",
	MVariableTable:            "VARIABLE_TABLE",
	MBytecodes:                "BYTECODES",
	MIsObsolete:               "IS_OBSOLETE",
	MVariableTableWithGeneric: "VARIABLE_TABLE_WITH_GENERIC",

	ORReferenceType:     "REFERENCE_TYPE",
	ORGetValues:         "GET_VALUES",
	ORSetValues:         "SET_VALUES",
	ORMonitorInfo:       "MONITOR_INFO",
	ORInvokeMethod:      "INVOKE_METHOD",
	ORDisableCollection: "DISABLE_COLLECTION",
	OREnableCollection:  "ENABLE_COLLECTION",
	ORIsCollected:       "IS_COLLECTED",

	SRValue: "VALUE",

	TRName:                    "NAME",
	TRSuspend:                 "SUSPEND",
	TRResume:                  "RESUME",
	TRStatus:                  "STATUS",
	TRThreadGroup:             "THREAD_GROUP",
	TRFrames:                  "FRAMES",
	TRFrameCount:              "FRAME_COUNT",
	TROwnedMonitors:           "OWNED_MONITORS",
	TRCurrentContendedMonitor: "CURRENT_CONTENDED_MONITOR",
	TRStop:                    "STOP",
	TRInterrupt:               "INTERRUPT",
	TRSuspendCount:            "SUSPEND_COUNT",
	TRPopTopFrame:             "POP_TOP_FRAME",

	TGRName:     "NAME",
	TGRParent:   "PARENT",
	TGRChildren: "CHILDREN",

	ARLength:    "LENGTH",
	ARGetValues: "GET_VALUES",
	ARSetValues: "SET_VALUES",

	CLRVisibleClasses: "VISIBLE_CLASSES",

	ERSet:                 "SET",
	ERClear:               "CLEAR",
	ERClearAllBreakpoints: "CLEAR_ALL_BREAKPOINTS",

	SFGetValues:  "GET_VALUES",
	SFSetValues:  "SET_VALUES",
	SFThisObject: "THIS_OBJECT",
	SFPopFrame:   "POP_FRAME",

	CORReflectedType: "REFLECTED_TYPE",

	EComposite: "COMPOSITE",

	HCRClassesHaveChanged: "CLASSES_HAVE_CHANGED",
	HCRGetClassVersion:    "GET_CLASS_VERSION",
	HCRDoReturn:           "DO_RETURN",
	HCRReenterOnExit:      "REENTER_ON_EXIT",
	HCRCapabilities:       "CAPABILITIES",
}
