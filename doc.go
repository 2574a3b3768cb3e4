// Package halmock provides test doubles for hardware peripheral client code.
//
// The mocks never touch real hardware. Instead, a test declares the ordered
// list of interactions ("transactions") the driver under test is expected to
// perform against a peripheral, substitutes the mock for the real peripheral,
// runs the driver, and finally verifies that every expectation was met.
//
// The general approach:
//
//  1. Define the expectations: an ordered list of transactions (e.g. a bus
//     read or write) you expect the driver to invoke on the peripheral.
//  2. Create the mock with the expectations and hand it to the driver.
//  3. Run the driver code.
//  4. Call Done() on the mock to verify that all expectations were consumed.
//
// This package contains the shared expectation engine every peripheral mock
// builds on. The peripheral-specific mocks live in the i2c, spi, pin, serial,
// delay and pwm subpackages; the engine subpackage multiplexes several
// peripherals over one shared ordered expectation stream so that
// cross-peripheral call ordering can be verified as well.
//
// Mocks keep their state behind a shared reference, so a mock can be cloned
// before it is moved into a driver and Done() called on the clone afterwards
// without having to reclaim the original.
package halmock
