package verbose

import "github.com/andrebq/jdwpspy/jdwp"

var commandTable = map[jdwp.Command]decodeFunc{
	jdwp.VMVersion:               noData,
	jdwp.VMClassesBySignature:    stringCommand("Class signature:"),
	jdwp.VMAllClasses:            noData,
	jdwp.VMAllThreads:            noData,
	jdwp.VMTopLevelThreadGroups:  noData,
	jdwp.VMDispose:               noData,
	jdwp.VMIDSizes:               noData,
	jdwp.VMSuspend:               noData,
	jdwp.VMResume:                noData,
	jdwp.VMExit:                  vmExitCommand,
	jdwp.VMCreateString:          stringCommand("String:"),
	jdwp.VMCapabilities:          noData,
	jdwp.VMClassPaths:            noData,
	jdwp.VMDisposeObjects:        vmDisposeObjectsCommand,
	jdwp.VMHoldEvents:            noData,
	jdwp.VMReleaseEvents:         noData,
	jdwp.VMCapabilitiesNew:       noData,
	jdwp.VMRedefineClasses:       vmRedefineClassesCommand,
	jdwp.VMSetDefaultStratum:     stringCommand("Stratum id:"),
	jdwp.VMAllClassesWithGeneric: noData,

	jdwp.RTSignature:            rtDefaultCommand,
	jdwp.RTClassLoader:          rtDefaultCommand,
	jdwp.RTModifiers:            rtDefaultCommand,
	jdwp.RTFields:               rtDefaultCommand,
	jdwp.RTMethods:              rtDefaultCommand,
	jdwp.RTGetValues:            rtGetValuesCommand,
	jdwp.RTSourceFile:           rtDefaultCommand,
	jdwp.RTNestedTypes:          rtDefaultCommand,
	jdwp.RTStatus:               rtDefaultCommand,
	jdwp.RTInterfaces:           rtDefaultCommand,
	jdwp.RTClassObject:          rtDefaultCommand,
	jdwp.RTSourceDebugExtension: rtDefaultCommand,
	jdwp.RTSignatureWithGeneric: rtDefaultCommand,
	jdwp.RTFieldsWithGeneric:    rtDefaultCommand,
	jdwp.RTMethodsWithGeneric:   rtDefaultCommand,

	jdwp.CTSuperclass:   ctSuperclassCommand,
	jdwp.CTSetValues:    ctSetValuesCommand,
	jdwp.CTInvokeMethod: ctInvokeMethodCommand,
	jdwp.CTNewInstance:  ctInvokeMethodCommand,

	jdwp.ATNewInstance: atNewInstanceCommand,

	jdwp.MLineTable:                mDefaultCommand,
	jdwp.MVariableTable:            mDefaultCommand,
	jdwp.MBytecodes:                mDefaultCommand,
	jdwp.MIsObsolete:               mDefaultCommand,
	jdwp.MVariableTableWithGeneric: mDefaultCommand,

	jdwp.ORReferenceType:     orDefaultCommand,
	jdwp.ORGetValues:         orGetValuesCommand,
	jdwp.ORSetValues:         orSetValuesCommand,
	jdwp.ORMonitorInfo:       orDefaultCommand,
	jdwp.ORInvokeMethod:      orInvokeMethodCommand,
	jdwp.ORDisableCollection: orDefaultCommand,
	jdwp.OREnableCollection:  orDefaultCommand,
	jdwp.ORIsCollected:       orDefaultCommand,

	jdwp.SRValue: objectCommand("String object id:"),

	jdwp.TRName:                    trDefaultCommand,
	jdwp.TRSuspend:                 trDefaultCommand,
	jdwp.TRResume:                  trDefaultCommand,
	jdwp.TRStatus:                  trDefaultCommand,
	jdwp.TRThreadGroup:             trDefaultCommand,
	jdwp.TRFrames:                  trFramesCommand,
	jdwp.TRFrameCount:              trDefaultCommand,
	jdwp.TROwnedMonitors:           trDefaultCommand,
	jdwp.TRCurrentContendedMonitor: trDefaultCommand,
	jdwp.TRStop:                    trStopCommand,
	jdwp.TRInterrupt:               trDefaultCommand,
	jdwp.TRSuspendCount:            trDefaultCommand,

	jdwp.TGRName:     objectCommand("Thread group id:"),
	jdwp.TGRParent:   objectCommand("Thread group id:"),
	jdwp.TGRChildren: objectCommand("Thread group id:"),

	jdwp.ARLength:    objectCommand("Array object id:"),
	jdwp.ARGetValues: arGetValuesCommand,
	jdwp.ARSetValues: arSetValuesCommand,

	jdwp.CLRVisibleClasses: objectCommand("Class loader object id:"),

	jdwp.ERSet:                 erSetCommand,
	jdwp.ERClear:               erClearCommand,
	jdwp.ERClearAllBreakpoints: noData,

	jdwp.SFGetValues:  sfGetValuesCommand,
	jdwp.SFSetValues:  sfSetValuesCommand,
	jdwp.SFThisObject: sfDefaultCommand,
	jdwp.SFPopFrame:   sfDefaultCommand,

	jdwp.CORReflectedType: objectCommand("Class object id:"),

	jdwp.EComposite: eCompositeCommand,

	jdwp.HCRClassesHaveChanged: notManaged,
	jdwp.HCRGetClassVersion:    notManaged,
	jdwp.HCRDoReturn:           notManaged,
	jdwp.HCRReenterOnExit:      notManaged,
	jdwp.HCRCapabilities:       notManaged,
}

func stringCommand(label string) decodeFunc {
	return func(d *decoder) { d.str(label) }
}

func objectCommand(label string) decodeFunc {
	return func(d *decoder) { d.objectID(label) }
}

func vmExitCommand(d *decoder) {
	d.integer("Exit code:")
}

func vmDisposeObjectsCommand(d *decoder) {
	n := d.count("Requests Count:")
	for i := 0; i < n && d.ok(); i++ {
		d.objectID("Object id:")
		d.integer("References count:")
	}
}

func vmRedefineClassesCommand(d *decoder) {
	n := d.count("Types count:")
	for i := 0; i < n && d.ok(); i++ {
		d.referenceTypeID("Type id:")
		size := d.integer("Classfile length:")
		d.skip("Class bytes:", int(size))
	}
}

func rtDefaultCommand(d *decoder) {
	d.referenceTypeID("Type id:")
}

func rtGetValuesCommand(d *decoder) {
	d.referenceTypeID("Type id:")
	n := d.count("Fields count:")
	for i := 0; i < n && d.ok(); i++ {
		d.fieldID("Field id:")
	}
}

func ctSuperclassCommand(d *decoder) {
	d.referenceTypeID("Class type id:")
}

func ctSetValuesCommand(d *decoder) {
	d.referenceTypeID("Class type id:")
	d.integer("Fields count:")
	d.fail(ErrValuesNotManaged)
}

// ctInvokeMethodCommand decodes both INVOKE_METHOD and NEW_INSTANCE, they share a layout.
func ctInvokeMethodCommand(d *decoder) {
	d.referenceTypeID("Class type id:")
	d.objectID("Thread id:")
	d.methodID("Method id:")
	invokeArguments(d)
}

func invokeArguments(d *decoder) {
	n := d.count("Arguments count:")
	for i := 0; i < n && d.ok(); i++ {
		d.taggedValue("Argument:")
	}
	d.flags("Invocation Options:", invocationOptions)
}

func atNewInstanceCommand(d *decoder) {
	d.referenceTypeID("Array type id:")
	d.integer("Length:")
}

func mDefaultCommand(d *decoder) {
	d.referenceTypeID("Class type id:")
	d.methodID("Method id:")
}

func orDefaultCommand(d *decoder) {
	d.objectID("Object id:")
}

func orGetValuesCommand(d *decoder) {
	d.objectID("Object id:")
	n := d.count("Fields count:")
	for i := 0; i < n && d.ok(); i++ {
		d.fieldID("Field id:")
	}
}

func orSetValuesCommand(d *decoder) {
	d.objectID("Object id:")
	d.integer("Fields count:")
	d.fail(ErrValuesNotManaged)
}

func orInvokeMethodCommand(d *decoder) {
	d.objectID("Object id:")
	d.objectID("Thread id:")
	d.referenceTypeID("Class type id:")
	d.methodID("Method id:")
	invokeArguments(d)
}

func trDefaultCommand(d *decoder) {
	d.objectID("Thread id:")
}

func trFramesCommand(d *decoder) {
	d.objectID("Thread id:")
	d.integer("First frame:")
	d.integer("Number of frame:")
}

func trStopCommand(d *decoder) {
	d.objectID("Thread id:")
	d.objectID("Exception object id:")
}

func arGetValuesCommand(d *decoder) {
	d.objectID("Array object id:")
	d.integer("First index:")
	d.integer("Length:")
}

func arSetValuesCommand(d *decoder) {
	arGetValuesCommand(d)
	d.fail(ErrValuesNotManaged)
}

func sfDefaultCommand(d *decoder) {
	d.objectID("Thread object id:")
	d.frameID("Frame id:")
}

func sfGetValuesCommand(d *decoder) {
	sfDefaultCommand(d)
	n := d.count("Slots count:")
	for i := 0; i < n && d.ok(); i++ {
		d.integer("Slot index:")
		d.signatureTag("Signature tag:")
	}
}

func sfSetValuesCommand(d *decoder) {
	sfDefaultCommand(d)
	n := d.count("Slots count:")
	for i := 0; i < n && d.ok(); i++ {
		d.integer("Slot index:")
		d.taggedValue("Values:")
	}
}
