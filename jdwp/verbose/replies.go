package verbose

import "github.com/andrebq/jdwpspy/jdwp"

var replyTable = map[jdwp.Command]decodeFunc{
	jdwp.VMVersion:               vmVersionReply,
	jdwp.VMClassesBySignature:    vmClassesBySignatureReply,
	jdwp.VMAllClasses:            vmAllClassesReply(false),
	jdwp.VMAllThreads:            objectListReply("Threads count:", "Thread id:"),
	jdwp.VMTopLevelThreadGroups:  objectListReply("Thread groups count:", "Thread group id:"),
	jdwp.VMDispose:               noData,
	jdwp.VMIDSizes:               vmIDSizesReply,
	jdwp.VMSuspend:               noData,
	jdwp.VMResume:                noData,
	jdwp.VMExit:                  noData,
	jdwp.VMCreateString:          objectReply("String id:"),
	jdwp.VMCapabilities:          vmCapabilitiesReply,
	jdwp.VMClassPaths:            vmClassPathsReply,
	jdwp.VMDisposeObjects:        noData,
	jdwp.VMHoldEvents:            noData,
	jdwp.VMReleaseEvents:         noData,
	jdwp.VMCapabilitiesNew:       vmCapabilitiesNewReply,
	jdwp.VMRedefineClasses:       noData,
	jdwp.VMSetDefaultStratum:     noData,
	jdwp.VMAllClassesWithGeneric: vmAllClassesReply(true),

	jdwp.RTSignature:            stringReply("Signature:"),
	jdwp.RTClassLoader:          objectReply("ClassLoader id:"),
	jdwp.RTModifiers:            rtModifiersReply,
	jdwp.RTFields:               rtFieldsReply(false),
	jdwp.RTMethods:              rtMethodsReply(false),
	jdwp.RTGetValues:            valuesReply,
	jdwp.RTSourceFile:           stringReply("Source file:"),
	jdwp.RTNestedTypes:          typeListReply("Types count:"),
	jdwp.RTStatus:               rtStatusReply,
	jdwp.RTInterfaces:           rtInterfacesReply,
	jdwp.RTClassObject:          objectReply("Class object id:"),
	jdwp.RTSourceDebugExtension: stringReply("Extension:"),
	jdwp.RTSignatureWithGeneric: rtSignatureWithGenericReply,
	jdwp.RTFieldsWithGeneric:    rtFieldsReply(true),
	jdwp.RTMethodsWithGeneric:   rtMethodsReply(true),

	jdwp.CTSuperclass:   ctSuperclassReply,
	jdwp.CTSetValues:    noData,
	jdwp.CTInvokeMethod: invokeMethodReply,
	jdwp.CTNewInstance:  ctNewInstanceReply,

	jdwp.ATNewInstance: taggedObjectReply("New array id:"),

	jdwp.MLineTable:                mLineTableReply,
	jdwp.MVariableTable:            mVariableTableReply(false),
	jdwp.MBytecodes:                mBytecodesReply,
	jdwp.MIsObsolete:               boolReply("Is obsolete:"),
	jdwp.MVariableTableWithGeneric: mVariableTableReply(true),

	jdwp.ORReferenceType:     typedReply,
	jdwp.ORGetValues:         valuesReply,
	jdwp.ORSetValues:         noData,
	jdwp.ORMonitorInfo:       orMonitorInfoReply,
	jdwp.ORInvokeMethod:      invokeMethodReply,
	jdwp.ORDisableCollection: noData,
	jdwp.OREnableCollection:  noData,
	jdwp.ORIsCollected:       boolReply("Is collected:"),

	jdwp.SRValue: stringReply("Value:"),

	jdwp.TRName:                    stringReply("Name:"),
	jdwp.TRSuspend:                 noData,
	jdwp.TRResume:                  noData,
	jdwp.TRStatus:                  trStatusReply,
	jdwp.TRThreadGroup:             objectReply("Thread group id:"),
	jdwp.TRFrames:                  trFramesReply,
	jdwp.TRFrameCount:              intReply("Frames count:"),
	jdwp.TROwnedMonitors:           trOwnedMonitorsReply,
	jdwp.TRCurrentContendedMonitor: taggedObjectReply("Monitor object id:"),
	jdwp.TRStop:                    noData,
	jdwp.TRInterrupt:               noData,
	jdwp.TRSuspendCount:            intReply("Suspend count:"),

	jdwp.TGRName:     stringReply("Name:"),
	jdwp.TGRParent:   objectReply("Parent thread group id:"),
	jdwp.TGRChildren: tgrChildrenReply,

	jdwp.ARLength:    intReply("Length:"),
	jdwp.ARGetValues: arGetValuesReply,
	jdwp.ARSetValues: noData,

	jdwp.CLRVisibleClasses: typeListReply("Classes count:"),

	jdwp.ERSet:                 intReply("Request id:"),
	jdwp.ERClear:               noData,
	jdwp.ERClearAllBreakpoints: noData,

	jdwp.SFGetValues:  valuesReply,
	jdwp.SFSetValues:  noData,
	jdwp.SFThisObject: taggedObjectReply("'this' object id:"),
	jdwp.SFPopFrame:   noData,

	jdwp.CORReflectedType: typedReply,

	jdwp.HCRClassesHaveChanged: notManaged,
	jdwp.HCRGetClassVersion:    notManaged,
	jdwp.HCRDoReturn:           notManaged,
	jdwp.HCRReenterOnExit:      notManaged,
	jdwp.HCRCapabilities:       notManaged,
}

var (
	capabilities = []string{
		"Can watch field modification:",
		"Can watch field access:",
		"Can get bytecodes:",
		"Can get synthetic attribute:",
		"Can get owned monitor info:",
		"Can get currently contended monitor:",
		"Can get monitor info:",
	}

	newCapabilities = []string{
		"Can redefine classes:",
		"Can add method:",
		"Can unrestrictedly rd. classes:",
		"Can pop frames:",
		"Can use instance filters:",
		"Can get source debug extension:",
		"Can request VMDeath event:",
		"Can set default stratum:",
	}
)

const reservedCapabilities = 17

func stringReply(label string) decodeFunc {
	return func(d *decoder) { d.str(label) }
}

func intReply(label string) decodeFunc {
	return func(d *decoder) { d.integer(label) }
}

func boolReply(label string) decodeFunc {
	return func(d *decoder) { d.boolean(label) }
}

func objectReply(label string) decodeFunc {
	return func(d *decoder) { d.objectID(label) }
}

func taggedObjectReply(label string) decodeFunc {
	return func(d *decoder) { d.taggedObjectID(label) }
}

func objectListReply(countLabel, label string) decodeFunc {
	return func(d *decoder) {
		n := d.count(countLabel)
		for i := 0; i < n && d.ok(); i++ {
			d.objectID(label)
		}
	}
}

func typeListReply(countLabel string) decodeFunc {
	return func(d *decoder) {
		n := d.count(countLabel)
		for i := 0; i < n && d.ok(); i++ {
			d.typeTagged("Type id:")
		}
	}
}

func typedReply(d *decoder) {
	d.typeTagged("Type id:")
}

func valuesReply(d *decoder) {
	n := d.count("Values count:")
	for i := 0; i < n && d.ok(); i++ {
		d.taggedValue("Value:")
	}
}

func vmVersionReply(d *decoder) {
	d.str("VM Description:")
	d.integer("JDWP Major Version:")
	d.integer("JDWP Minor Version:")
	d.str("VM Version:")
	d.str("VM Name:")
}

func vmClassesBySignatureReply(d *decoder) {
	n := d.count("Classes count:")
	for i := 0; i < n && d.ok(); i++ {
		d.typeTagged("Type id:")
		d.classStatus("Status:")
	}
}

func vmAllClassesReply(generic bool) decodeFunc {
	return func(d *decoder) {
		n := d.count("Classes count:")
		for i := 0; i < n && d.ok(); i++ {
			d.typeTagged("Type id:")
			d.str("Class signature:")
			if generic {
				d.str("Generic class signature:")
			}
			d.classStatus("Status:")
		}
	}
}

func vmIDSizesReply(d *decoder) {
	d.integer("Field ID size:")
	d.integer("Method ID size:")
	d.integer("Object ID size:")
	d.integer("Reference type ID size:")
	d.integer("Frame ID size:")
}

func vmCapabilitiesReply(d *decoder) {
	for _, label := range capabilities {
		d.boolean(label)
	}
}

func vmCapabilitiesNewReply(d *decoder) {
	vmCapabilitiesReply(d)
	for _, label := range newCapabilities {
		d.boolean(label)
	}
	for i := 0; i < reservedCapabilities && d.ok(); i++ {
		d.boolean("Reserved:")
	}
}

func vmClassPathsReply(d *decoder) {
	d.str("Base directory:")
	n := d.count("Classpaths count:")
	for i := 0; i < n && d.ok(); i++ {
		d.str("Classpath:")
	}
	n = d.count("Bootclasspaths count:")
	for i := 0; i < n && d.ok(); i++ {
		d.str("Bootclasspath:")
	}
}

func rtModifiersReply(d *decoder) {
	d.flags("Modifiers:", classModifiers)
}

func rtFieldsReply(generic bool) decodeFunc {
	return func(d *decoder) {
		n := d.count("Fields count:")
		for i := 0; i < n && d.ok(); i++ {
			d.fieldID("Field id:")
			d.str("Name:")
			d.str("Signature:")
			if generic {
				d.str("Generic signature:")
			}
			d.flags("Modifiers:", fieldModifiers)
		}
	}
}

func rtMethodsReply(generic bool) decodeFunc {
	return func(d *decoder) {
		n := d.count("Methods count:")
		for i := 0; i < n && d.ok(); i++ {
			d.methodID("Method id:")
			d.str("Name:")
			d.str("Signature:")
			if generic {
				d.str("Generic signature:")
			}
			d.flags("Modifiers:", methodModifiers)
		}
	}
}

func rtStatusReply(d *decoder) {
	d.classStatus("Status:")
}

func rtInterfacesReply(d *decoder) {
	n := d.count("Interfaces count:")
	for i := 0; i < n && d.ok(); i++ {
		d.referenceTypeID("Interface type id:")
	}
}

func rtSignatureWithGenericReply(d *decoder) {
	d.str("Signature:")
	d.str("Generic signature:")
}

func ctSuperclassReply(d *decoder) {
	d.referenceTypeID("Superclass type id:")
}

func invokeMethodReply(d *decoder) {
	d.taggedValue("Return value:")
	d.taggedObjectID("Exception object id:")
}

func ctNewInstanceReply(d *decoder) {
	d.taggedObjectID("New object id:")
	d.taggedObjectID("Exception object id:")
}

func mLineTableReply(d *decoder) {
	d.long("Lowest valid code index:")
	d.long("Highest valid code index:")
	n := d.count("Number of lines:")
	for i := 0; i < n && d.ok(); i++ {
		d.long("Line code Index:")
		d.integer("Line number:")
	}
}

func mVariableTableReply(generic bool) decodeFunc {
	return func(d *decoder) {
		d.integer("Nb of slots used by all args:")
		n := d.count("Nb of variables:")
		for i := 0; i < n && d.ok(); i++ {
			d.long("First code index:")
			d.str("Variable name:")
			d.str("Variable type signature:")
			if generic {
				d.str("Var. type generic signature:")
			}
			d.integer("Code index length:")
			d.integer("Slot id:")
		}
	}
}

func mBytecodesReply(d *decoder) {
	n := d.count("Nb of bytes:")
	d.skip("Method bytes:", n)
}

func orMonitorInfoReply(d *decoder) {
	d.objectID("Owner thread id:")
	d.integer("Entry count:")
	n := d.count("Nb of waiters:")
	for i := 0; i < n && d.ok(); i++ {
		d.objectID("Waiting thread id:")
	}
}

func trStatusReply(d *decoder) {
	d.threadStatus()
	d.flags("Suspend status:", suspendStatus)
}

func trFramesReply(d *decoder) {
	n := d.count("Frames count:")
	for i := 0; i < n && d.ok(); i++ {
		d.frameID("Frame id:")
		d.location("Location:")
	}
}

func trOwnedMonitorsReply(d *decoder) {
	n := d.count("Monitors count:")
	for i := 0; i < n && d.ok(); i++ {
		d.taggedObjectID("Monitor object id:")
	}
}

func tgrChildrenReply(d *decoder) {
	n := d.count("Child threads count:")
	for i := 0; i < n && d.ok(); i++ {
		d.objectID("Child thread id:")
	}
	n = d.count("Child group threads count:")
	for i := 0; i < n && d.ok(); i++ {
		d.objectID("Child group thread id:")
	}
}

func arGetValuesReply(d *decoder) {
	d.arrayRegion()
}
