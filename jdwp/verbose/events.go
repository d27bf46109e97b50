package verbose

import "fmt"

const (
	eventSingleStep                = 1
	eventBreakpoint                = 2
	eventFramePop                  = 3
	eventException                 = 4
	eventUserDefined               = 5
	eventThreadStart               = 6
	eventThreadDeath               = 7
	eventClassPrepare              = 8
	eventClassUnload               = 9
	eventClassLoad                 = 10
	eventFieldAccess               = 20
	eventFieldModification         = 21
	eventExceptionCatch            = 30
	eventMethodEntry               = 40
	eventMethodExit                = 41
	eventMethodExitWithReturnValue = 42
	eventMonitorContendedEnter     = 43
	eventMonitorContendedEntered   = 44
	eventMonitorWait               = 45
	eventMonitorWaited             = 46
	eventVMStart                   = 90
	eventVMDeath                   = 99
	eventVMDisconnected            = 100
)

var eventKinds = map[byte]string{
	eventSingleStep:                "SINGLE_STEP",
	eventBreakpoint:                "BREAKPOINT",
	eventFramePop:                  "FRAME_POP",
	eventException:                 "EXCEPTION",
	eventUserDefined:               "USER_DEFINED",
	eventThreadStart:               "THREAD_START",
	eventThreadDeath:               "THREAD_DEATH",
	eventClassPrepare:              "CLASS_PREPARE",
	eventClassUnload:               "CLASS_UNLOAD",
	eventClassLoad:                 "CLASS_LOAD",
	eventFieldAccess:               "FIELD_ACCESS",
	eventFieldModification:         "FIELD_MODIFICATION",
	eventExceptionCatch:            "EXCEPTION_CATCH",
	eventMethodEntry:               "METHOD_ENTRY",
	eventMethodExit:                "METHOD_EXIT",
	eventMethodExitWithReturnValue: "METHOD_EXIT_WITH_RETURN_VALUE",
	eventMonitorContendedEnter:     "MONITOR_CONTENDED_ENTER",
	eventMonitorContendedEntered:   "MONITOR_CONTENDED_ENTERED",
	eventMonitorWait:               "MONITOR_WAIT",
	eventMonitorWaited:             "MONITOR_WAITED",
	eventVMStart:                   "VM_START",
	eventVMDeath:                   "VM_DEATH",
	eventVMDisconnected:            "VM_DISCONNECTED",
}

var modifierKinds = map[byte]string{
	1:  "Count",
	2:  "Conditional",
	3:  "ThreadOnly",
	4:  "ClassOnly",
	5:  "ClassMatch",
	6:  "ClassExclude",
	7:  "LocationOnly",
	8:  "ExceptionOnly",
	9:  "FieldOnly",
	10: "Step",
	11: "InstanceOnly",
	12: "SourceNameMatch",
}

func (d *decoder) eventKind() byte {
	v := d.u8()
	d.println("Event kind:", fmt.Sprintf("0x%02X (%v)", v, lookup(eventKinds, v)))
	return v
}

func erSetCommand(d *decoder) {
	d.eventKind()
	d.suspendPolicy()
	n := d.count("Modifiers count:")
	for i := 0; i < n && d.ok(); i++ {
		modifier(d)
	}
}

func modifier(d *decoder) {
	start := d.pos
	kind := d.u8()
	name, known := modifierKinds[kind]
	if !known {
		d.pos = start
		d.fail(fmt.Errorf("%w: %d", ErrUnknownModifierKind, kind))
		return
	}
	d.println("Modifier kind:", fmt.Sprintf("0x%02X (%v)", kind, name))
	switch kind {
	case 1:
		d.integer("Count:")
	case 2:
		d.integer("Expression id:")
	case 3:
		d.objectID("Thread id:")
	case 4:
		d.referenceTypeID("Class type id:")
	case 5, 6:
		d.str("Class pattern:")
	case 7:
		d.location("Location:")
	case 8:
		d.referenceTypeID("Exception type id:")
		d.boolean("Caught:")
		d.boolean("Uncaught:")
	case 9:
		d.referenceTypeID("Declaring type id:")
		d.fieldID("Field id:")
	case 10:
		d.objectID("Thread id:")
		d.stepSize()
		d.stepDepth()
	case 11:
		d.objectID("Object id:")
	case 12:
		d.str("Source name pattern:")
	}
}

func erClearCommand(d *decoder) {
	d.eventKind()
	d.integer("Request id:")
}

func eCompositeCommand(d *decoder) {
	d.suspendPolicy()
	n := d.count("Events count:")
	for i := 0; i < n && d.ok(); i++ {
		event(d)
	}
}

func event(d *decoder) {
	start := d.pos
	kind := d.u8()
	if _, known := eventKinds[kind]; !known {
		d.pos = start
		d.fail(fmt.Errorf("%w: %d", ErrUnknownEventKind, kind))
		return
	}
	d.println("Event kind:", fmt.Sprintf("0x%02X (%v)", kind, eventKinds[kind]))
	d.integer("Request id:")
	switch kind {
	case eventVMStart:
		d.objectID("Initial thread object id:")
	case eventSingleStep, eventBreakpoint, eventMethodEntry, eventMethodExit:
		d.objectID("Thread object id:")
		d.location("Location:")
	case eventMethodExitWithReturnValue:
		d.objectID("Thread object id:")
		d.location("Location:")
		d.taggedValue("Return value:")
	case eventMonitorContendedEnter, eventMonitorContendedEntered:
		d.objectID("Thread object id:")
		d.taggedObjectID("Monitor object id:")
		d.location("Location:")
	case eventMonitorWait:
		d.objectID("Thread object id:")
		d.taggedObjectID("Monitor object id:")
		d.location("Location:")
		d.long("Timeout:")
	case eventMonitorWaited:
		d.objectID("Thread object id:")
		d.taggedObjectID("Monitor object id:")
		d.location("Location:")
		d.boolean("Timed out:")
	case eventException:
		d.objectID("Thread object id:")
		d.location("Location:")
		d.taggedObjectID("Exception object id:")
		d.location("Catch location:")
	case eventThreadStart, eventThreadDeath:
		d.objectID("Thread object id:")
	case eventClassPrepare:
		d.objectID("Thread object id:")
		d.typeTagged("Type id:")
		d.str("Type signature:")
		d.classStatus("Status:")
	case eventClassUnload:
		d.str("Type signature:")
	case eventFieldAccess, eventFieldModification:
		d.objectID("Thread object id:")
		d.location("Location:")
		d.typeTagged("Type id:")
		d.fieldID("Field id:")
		d.taggedObjectID("Object id:")
		if kind == eventFieldModification {
			d.taggedValue("Value:")
		}
	case eventVMDeath:
	default:
		// FRAME_POP, USER_DEFINED and the other request only kinds never travel in a composite.
		d.fail(fmt.Errorf("%w: %d", ErrUnknownEventKind, kind))
	}
}
