package stats

/*
This file defines all the metrics being collected.  As new metrics are added please follow this pattern.
*/

const (
	/****************************** Scheduler Metrics ****************************************/
	/*
		the number of job submissions the scheduler has received (valid or not)
	*/
	SchedJobRequestsCounter = "schedJobRequestsCounter"

	/*
		the number of job submissions accepted and placed
	*/
	SchedJobsCounter = "schedJobsCounter"

	/*
		the number of job submissions rejected as invalid (empty task list or unknown app)
	*/
	SchedInvalidJobsCounter = "schedInvalidJobsCounter"

	/*
		the number of job submissions rejected because the worker pool was empty
	*/
	SchedNoWorkersCounter = "schedNoWorkersCounter"

	/*
		latency of a submit call, from intake validation through placement
	*/
	SchedSubmitLatency_ms = "schedSubmitLatency_ms"

	/*
		the number of reservations created by the placement engine
	*/
	SchedReservationsCounter = "schedReservationsCounter"

	/*
		the number of known workers at the time of the last placement
	*/
	SchedWorkerPoolSizeGauge = "schedWorkerPoolSizeGauge"

	/****************************** Pull Metrics *********************************************/
	/*
		the number of pull calls made by workers
	*/
	SchedPullsCounter = "schedPullsCounter"

	/*
		the number of launch specs handed out across all pulls
	*/
	SchedTasksLaunchedCounter = "schedTasksLaunchedCounter"

	/*
		the number of pulls that found no claimable reservation
	*/
	SchedEmptyPullsCounter = "schedEmptyPullsCounter"

	/*
		the number of stale reservations discarded during pull scans
	*/
	SchedStaleReservationsCounter = "schedStaleReservationsCounter"

	/*
		latency of a pull call, including the queue scan
	*/
	SchedPullLatency_ms = "schedPullLatency_ms"

	/****************************** Routing Metrics ******************************************/
	/*
		the number of frontend status messages the router attempted to deliver
	*/
	SchedFrontendMessagesCounter = "schedFrontendMessagesCounter"

	/*
		the number of status messages dropped because no frontend was registered for the app
	*/
	SchedFrontendNotFoundCounter = "schedFrontendNotFoundCounter"

	/*
		the number of status messages that failed in the delivery client (best-effort, not retried here)
	*/
	SchedFrontendDeliveryErrCounter = "schedFrontendDeliveryErrCounter"

	/*
		the number of frontend registrations (including overwrites)
	*/
	SchedFrontendRegistrationsCounter = "schedFrontendRegistrationsCounter"

	/****************************** Cluster Metrics ******************************************/
	/*
		the number of workers currently visible to the membership source
	*/
	ClusterAvailableNodes = "availableNodes"

	/*
		the number of membership fetches that failed (before backoff retry)
	*/
	ClusterFetchErrCounter = "fetchErrCounter"
)
