package main

import clierrors "github.com/cristianoliveira/camtray/internal/errors"

// output prints user-facing command results.
var output clierrors.ErrorHandler = clierrors.NewDefaultCLIHandler()
